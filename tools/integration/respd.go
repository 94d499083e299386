package integration

import (
	"fmt"
	"log"
	"net"

	"go.uber.org/zap"

	"github.com/distributedio/respd"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/db"
)

var (
	svr   *respd.Server
	store *db.Store
	cfg   = conf.MockConf()
	//ServerAddr default server addr
	ServerAddr = "127.0.0.1:17369"
	lis        net.Listener
)

//SetAuth default no verify
// specify auth to enable validation
func SetAuth(auth string) {
	cfg.Server.Auth = auth
}

// SetAddr set server listen addr
func SetAddr(addr string) {
	ServerAddr = addr
}

// SetCodec replaces the decoder limits of the server
func SetCodec(codec conf.Codec) {
	cfg.Codec = codec
}

//Start start server
//1.open db
//2.listen on ServerAddr and serve in background
func Start() {
	zap.ReplaceGlobals(zap.NewNop())
	var err error
	store = db.Open()
	svr = respd.New(&context.ServerContext{
		RequirePass: cfg.Server.Auth,
		Store:       store,
		Broker:      db.NewBroker(),
	}, &cfg.Server, &cfg.Codec)

	lis, err = net.Listen("tcp", ServerAddr)
	if err != nil {
		log.Fatalln(err)
	}
	go svr.Serve(lis)
}

//Close close server listen fd
func Close() {
	if err := lis.Close(); err != nil {
		fmt.Println(err)
	}
	if err := store.Close(); err != nil {
		fmt.Println(err)
	}
}
