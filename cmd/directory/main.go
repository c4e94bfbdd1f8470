package main

import (
	"os"

	"github.com/cgrigis-da/hawalon/config"
	"github.com/cgrigis-da/hawalon/directory"
	"github.com/cgrigis-da/hawalon/log"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Errorf("loading config : %s", err.Error())
		os.Exit(1)
	}
	log.InitLogger(conf.Log.Dev)
	if !conf.Log.Dev && conf.Log.Level != "" {
		log.SetLevel(conf.Log.Level)
	}
	if err := config.Serve(conf, new(directory.DirectoryChaincode)); err != nil {
		log.Errorf("chaincode stopped : %s", err.Error())
		os.Exit(1)
	}
}
