package main

import (
	"os"

	"github.com/cgrigis-da/hawalon/config"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/manager"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Errorf("loading config : %s", err.Error())
		os.Exit(1)
	}
	cc := new(manager.HawalonChaincode)
	if err := cc.ConfigureChaincode(conf); err != nil {
		log.Errorf("configuring chaincode : %s", err.Error())
		os.Exit(1)
	}
	if err := config.Serve(conf, cc); err != nil {
		log.Errorf("chaincode stopped : %s", err.Error())
		os.Exit(1)
	}
}
