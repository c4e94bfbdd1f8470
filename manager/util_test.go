package manager

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cgrigis-da/hawalon/config"
	"github.com/cgrigis-da/hawalon/directory"
	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/identity/identitytest"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/require"
)

const (
	initiator = "org1::initiator"
	bob       = "org1::bob"
	carol     = "org2::carol"
	dave      = "org2::dave"

	pw1Hash     = "c592df4a86933b92addc9842402ddf198c638ea9be58916ee6e3734e1e3152f8"
	pw1Sha3Hash = "7e51aafb66da8878bbf68fe82e8f159930b6b979ea4b9ec973bf77677bb73fdf"
)

// network : hawalon chaincode with a directory chaincode on the same channel
type network struct {
	t    *testing.T
	cc   *HawalonChaincode
	stub *shimtest.MockStub
	dir  *shimtest.MockStub
	tx   int
}

func newNetwork(t *testing.T) *network {
	return newNetworkOn(t, hawala.AlgorithmSHA256)
}

// newNetworkOn : network locking transfers with algorithm
func newNetworkOn(t *testing.T, algorithm string) *network {
	conf := config.Default()
	conf.Log.Dev = true
	conf.Protocol.HashAlgorithm = algorithm
	cc := new(HawalonChaincode)
	require.NoError(t, cc.ConfigureChaincode(conf))

	stub := shimtest.NewMockStub("Hawalon", cc)
	dir := shimtest.NewMockStub(conf.Protocol.DirectoryChaincode, new(directory.DirectoryChaincode))
	stub.Invokables[conf.Protocol.DirectoryChaincode] = dir
	return &network{t: t, cc: cc, stub: stub, dir: dir}
}

func setCaller(stub *shimtest.MockStub, party string) {
	parts := strings.SplitN(party, "::", 2)
	identitytest.SetCaller(stub, parts[0], parts[1])
}

func (n *network) nextTx() string {
	n.tx++
	return fmt.Sprintf("tx-%d", n.tx)
}

func (n *network) invoke(party, method string, input interface{}) peer.Response {
	setCaller(n.stub, party)
	raw, _ := json.Marshal(input)
	return n.stub.MockInvoke(n.nextTx(), [][]byte{[]byte(method), raw})
}

// must : invokes and decodes a successful response
func (n *network) must(party, method string, input interface{}, out interface{}) {
	resp := n.invoke(party, method, input)
	require.EqualValues(n.t, 200, resp.Status, "%s by %s : %s", method, party, resp.Message)
	if out != nil {
		require.NoError(n.t, json.Unmarshal(resp.Payload, out))
	}
}

func (n *network) registerAlias(party, alias string) {
	setCaller(n.dir, party)
	raw, _ := json.Marshal(model.RegisterAliasInput{Alias: alias})
	resp := n.dir.MockInvoke(n.nextTx(), [][]byte{[]byte("registerAlias"), raw})
	require.EqualValues(n.t, 200, resp.Status, resp.Message)
	<-n.dir.ChaincodeEventsChannel
}

func (n *network) initiate(from, via, to, amount string) *model.TransferProposal {
	var out model.TransitionOutput
	n.must(from, "initiate", map[string]string{
		"intermediary": via,
		"destination":  to,
		"amount":       amount,
		"secretHash":   pw1Hash,
	}, &out)
	require.NotNil(n.t, out.Proposal)
	return out.Proposal
}

func (n *network) events() []*model.Event {
	var out []*model.Event
	for {
		select {
		case ev := <-n.stub.ChaincodeEventsChannel:
			var e model.Event
			require.NoError(n.t, json.Unmarshal(ev.Payload, &e))
			require.Equal(n.t, ev.EventName, e.Name)
			out = append(out, &e)
		default:
			return out
		}
	}
}
