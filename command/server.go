package command

import (
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
)

// Info returns information and statistics about the server,
// an optional section name picks server, clients or commandstats
func Info(ctx *Context) {
	if len(ctx.Args) > 1 {
		resp.ReplyError(ctx.Out, ErrSyntax.Error())
		return
	}
	section := "default"
	if len(ctx.Args) == 1 {
		section = strings.ToLower(ctx.Args[0])
	}
	want := func(name string, inDefault bool) bool {
		return section == name || section == "all" || (inDefault && section == "default")
	}

	var lines []string
	if want("server", true) {
		uptime := int64(time.Since(ctx.Server.StartAt) / time.Second)
		lines = append(lines, "# Server")
		lines = append(lines, "respd_version:"+context.ReleaseVersion)
		lines = append(lines, "respd_git_sha1:"+context.GitHash)
		lines = append(lines, "respd_build_id:"+context.BuildTS)
		lines = append(lines, "os:"+runtime.GOOS)
		lines = append(lines, "arch:"+runtime.GOARCH)
		lines = append(lines, "go_version:"+runtime.Version())
		lines = append(lines, "process_id:"+strconv.Itoa(os.Getpid()))
		lines = append(lines, "uptime_in_seconds:"+strconv.FormatInt(uptime, 10))
		lines = append(lines, "uptime_in_days:"+strconv.FormatInt(uptime/86400, 10))
	}

	if want("clients", true) {
		// count the number of clients
		var numberOfClients int
		ctx.Server.Clients.Range(func(k, v interface{}) bool {
			numberOfClients++
			return true
		})
		lines = append(lines, "# Clients")
		lines = append(lines, "connected_clients:"+strconv.Itoa(numberOfClients))
	}

	if want("commandstats", false) {
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, "# Commandstats")
		for _, name := range names {
			calls, usec := commands[name].Stat.load()
			if calls == 0 {
				continue
			}
			perCall := strconv.FormatFloat(float64(usec)/float64(calls), 'f', 2, 64)
			lines = append(lines, "cmdstat_"+name+":calls="+strconv.FormatInt(calls, 10)+
				",usec="+strconv.FormatInt(usec, 10)+",usec_per_call="+perCall)
		}
	}

	if len(lines) == 0 {
		resp.ReplyBulkString(ctx.Out, "")
		return
	}
	resp.ReplyBulkString(ctx.Out, strings.Join(lines, "\n")+"\n")
}

// RedisCommand returns Array reply of details about all Redis commands
func RedisCommand(ctx *Context) {
	count := func(ctx *Context) {
		resp.ReplyInteger(ctx.Out, int64(len(commands)))
	}
	getkeys := func(ctx *Context) {
		args := ctx.Args[1:]
		if len(args) == 0 {
			resp.ReplyError(ctx.Out, ErrUnknownSubcommand.Error())
			return
		}
		name := strings.ToLower(args[0])
		cmdInfo, ok := commands[name]
		if !ok {
			resp.ReplyError(ctx.Out, "ERR Invalid command specified")
			return
		}

		if cmdInfo.Cons.Arity > 0 && len(args) != cmdInfo.Cons.Arity {
			resp.ReplyError(ctx.Out, "ERR Invalid number of arguments specified for command")
			return
		}
		if cmdInfo.Cons.Arity < 0 && len(args) < -cmdInfo.Cons.Arity {
			resp.ReplyError(ctx.Out, "ERR Invalid number of arguments specified for command")
			return
		}
		if cmdInfo.Cons.FirstKey == 0 {
			resp.ReplyError(ctx.Out, "ERR The command has no key arguments")
			return
		}
		keys := []resp.Value{}
		last := cmdInfo.Cons.LastKey
		if last < 0 {
			last += len(args)
		}
		for i := cmdInfo.Cons.FirstKey; i <= last; i += cmdInfo.Cons.KeyStep {
			keys = append(keys, resp.BulkString(args[i]))
		}
		resp.ReplyValue(ctx.Out, resp.Array(keys...))
	}
	info := func(ctx *Context) {
		names := ctx.Args[1:]
		details := make([]resp.Value, 0, len(names))
		for _, name := range names {
			name = strings.ToLower(name)
			if cmd, ok := commands[name]; ok {
				details = append(details, commandDetail(name, cmd))
			} else {
				details = append(details, resp.NullBulkString())
			}
		}
		resp.ReplyValue(ctx.Out, resp.Array(details...))
	}
	list := func(ctx *Context) {
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		details := make([]resp.Value, 0, len(names))
		for _, name := range names {
			details = append(details, commandDetail(name, commands[name]))
		}
		resp.ReplyValue(ctx.Out, resp.Array(details...))
	}
	args := ctx.Args
	if len(args) == 0 {
		list(ctx)
		return
	}
	switch strings.ToLower(args[0]) {
	case "count":
		count(ctx)
	case "getkeys":
		getkeys(ctx)
	case "info":
		info(ctx)
	default:
		resp.ReplyError(ctx.Out, ErrUnknownSubcommand.Error())
	}
}

// commandDetail is the COMMAND INFO entry of a command:
// name, arity, flags, first key, last key and key step
func commandDetail(name string, cmd Desc) resp.Value {
	flags := parseFlags(cmd.Cons.Flags)
	fv := make([]resp.Value, len(flags))
	for i := range flags {
		fv[i] = resp.SimpleString(flags[i])
	}
	return resp.Array(
		resp.BulkString(name),
		resp.Integer(int64(cmd.Cons.Arity)),
		resp.Array(fv...),
		resp.Integer(int64(cmd.Cons.FirstKey)),
		resp.Integer(int64(cmd.Cons.LastKey)),
		resp.Integer(int64(cmd.Cons.KeyStep)),
	)
}
