package manager

import (
	"fmt"

	"github.com/cgrigis-da/hawalon/config"
	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// HawalonChaincode : runs multi hop hash locked transfers.
// keeps proposals, locked ious, ious and reveals on worldstate
// and resolves aliases through directory chaincode on same channel.
type HawalonChaincode struct {
	engine    *hawala.Engine
	directory string
}

func (cc *HawalonChaincode) Init(stub shim.ChaincodeStubInterface) peer.Response {
	if cc.engine == nil {
		log.Errorf("[%s] Init called before ConfigureChaincode", errNotConfigured)
		return shim.Error("chaincode is not configured")
	}
	channelName := stub.GetChannelID()
	log.Infof("Initializing Hawalon Chaincode on %s", channelName)
	raw, err := stub.GetState(ccAlgorithmKey)
	if err != nil {
		log.Errorf("[%s] [%s] %s", errGettingState, ccAlgorithmKey, err.Error())
		return shim.Error(err.Error())
	}
	if len(raw) != 0 && string(raw) != cc.engine.Algorithm() {
		log.Errorf("channel uses %s, chaincode configured with %s", string(raw), cc.engine.Algorithm())
		return shim.Error(fmt.Sprintf("channel hash algorithm is %s", string(raw)))
	}
	if err := stub.PutState(ccChannelKey, []byte(channelName)); err != nil {
		log.Errorf("[%s] [%s] %s", errPuttingState, ccChannelKey, err.Error())
		return shim.Error(err.Error())
	}
	if err := stub.PutState(ccAlgorithmKey, []byte(cc.engine.Algorithm())); err != nil {
		log.Errorf("[%s] [%s] %s", errPuttingState, ccAlgorithmKey, err.Error())
		return shim.Error(err.Error())
	}
	log.Info("Chaincode initialized")
	return shim.Success(nil)
}

func (cc *HawalonChaincode) Invoke(stub shim.ChaincodeStubInterface) peer.Response {
	if cc.engine == nil {
		log.Errorf("[%s] Invoke called before ConfigureChaincode", errNotConfigured)
		return shim.Error("chaincode is not configured")
	}
	methodName, args := stub.GetFunctionAndParameters()
	m, ok := methodRegistry[methodName]
	if !ok {
		log.Errorf("[%s] [%s]", errMethodUnsupported, methodName)
		return shim.Error("not supported")
	}
	if len(args) > 1 {
		log.Errorf("[%s] [%s] got %d", errInvlidArgsCount, methodName, len(args))
		return shim.Error("expected a single json argument")
	}
	in := []byte("{}")
	if len(args) == 1 {
		in = []byte(args[0])
	}
	log.Infof("[Invoke] method = %s tx = %s", methodName, stub.GetTxID())
	return m(cc, stub, in)
}

type method func(cc *HawalonChaincode, stub shim.ChaincodeStubInterface, in []byte) peer.Response

var methodRegistry = map[string]method{
	"initiate":           (*HawalonChaincode).initiate,
	"acceptAndForward":   (*HawalonChaincode).acceptAndForward,
	"accept":             (*HawalonChaincode).accept,
	"unlock":             (*HawalonChaincode).unlock,
	"redeemFromReveal":   (*HawalonChaincode).redeemFromReveal,
	"cancel":             (*HawalonChaincode).cancel,
	"getProposal":        (*HawalonChaincode).getProposal,
	"getChain":           (*HawalonChaincode).getChain,
	"listProposalsForMe": (*HawalonChaincode).listProposalsForMe,
	"listLockedIous":     (*HawalonChaincode).listLockedIous,
	"listIous":           (*HawalonChaincode).listIous,
	"listReveals":        (*HawalonChaincode).listReveals,
}

// ConfigureChaincode : configure chaincode instance.
func (cc *HawalonChaincode) ConfigureChaincode(conf *config.Config) error {
	log.InitLogger(conf.Log.Dev)
	if !conf.Log.Dev && conf.Log.Level != "" {
		log.SetLevel(conf.Log.Level)
	}
	engine, err := hawala.NewEngine(conf.Protocol.HashAlgorithm)
	if err != nil {
		return err
	}
	cc.engine = engine
	cc.directory = conf.Protocol.DirectoryChaincode
	return nil
}
