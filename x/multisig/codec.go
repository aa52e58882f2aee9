package multisig

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Msg)(nil), nil)
	cdc.RegisterConcrete(&Contract{}, "quorum/multisig/Contract", nil)
	cdc.RegisterConcrete(&Proposal{}, "quorum/multisig/Proposal", nil)
	cdc.RegisterConcrete(&UpdateQuorumMsg{}, "quorum/multisig/UpdateQuorumMsg", nil)
}
