package test

import (
	"github.com/cgrigis-da/hawalon/config"
	"github.com/cgrigis-da/hawalon/manager"

	"github.com/hyperledger/fabric-chaincode-go/shimtest"
)

func prepareManager(algorithm string) *shimtest.MockStub {
	conf := config.Default()
	conf.Protocol.HashAlgorithm = algorithm
	cc := new(manager.HawalonChaincode)
	if err := cc.ConfigureChaincode(conf); err != nil {
		panic(err)
	}
	return shimtest.NewMockStub("Hawalon", cc)
}
