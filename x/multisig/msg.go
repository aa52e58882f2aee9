package multisig

import (
	"github.com/iov-one/quorum/errors"
)

const pathUpdateQuorumMsg = "multisig/update_quorum"

// Msg is a self-governance request that a proposal may carry in its
// payload. Such a proposal must address the engine's own address; the
// message is decoded and applied during the proposal's execution step.
type Msg interface {
	Path() string
	Validate() error
}

// UpdateQuorumMsg changes the confirmation threshold of the wallet.
type UpdateQuorumMsg struct {
	Threshold int64
}

var _ Msg = (*UpdateQuorumMsg)(nil)

// Path fulfills the Msg interface to allow routing
func (UpdateQuorumMsg) Path() string {
	return pathUpdateQuorumMsg
}

// Validate enforces threshold boundaries that can be checked without
// the registry. The upper bound is enforced on execution.
func (m *UpdateQuorumMsg) Validate() error {
	if m.Threshold < 1 {
		return errors.Wrap(ErrInvalidQuorum, "threshold must be greater than 0")
	}
	return nil
}

// MarshalMsg encodes a self-governance message into a proposal
// payload.
func MarshalMsg(msg Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	raw, err := cdc.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return raw, nil
}

// ParseMsg decodes a proposal payload into a self-governance message.
func ParseMsg(payload []byte) (Msg, error) {
	var msg Msg
	if err := cdc.UnmarshalBinaryBare(payload, &msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "unmarshal msg: %s", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}
