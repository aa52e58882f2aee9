package multisig

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestUpdateQuorumMsgRoundTrip(t *testing.T) {
	payload, err := MarshalMsg(&UpdateQuorumMsg{Threshold: 3})
	assert.Nil(t, err)

	msg, err := ParseMsg(payload)
	assert.Nil(t, err)
	update, ok := msg.(*UpdateQuorumMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	assert.Equal(t, int64(3), update.Threshold)
	assert.Equal(t, "multisig/update_quorum", update.Path())
}

func TestMarshalMsgRejectsInvalid(t *testing.T) {
	_, err := MarshalMsg(&UpdateQuorumMsg{Threshold: 0})
	assert.IsErr(t, ErrInvalidQuorum, err)
}

func TestParseMsgGarbage(t *testing.T) {
	cases := map[string]struct {
		payload []byte
		wantErr *errors.Error
	}{
		"empty payload": {
			payload: nil,
			wantErr: errors.ErrMsg,
		},
		"random bytes": {
			payload: []byte("there is no such message"),
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := ParseMsg(tc.payload)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestParseMsgValidates(t *testing.T) {
	// a structurally valid message with a broken threshold must not
	// pass the parse step
	raw, err := cdc.MarshalBinaryBare(&UpdateQuorumMsg{Threshold: -2})
	assert.Nil(t, err)
	_, err = ParseMsg(raw)
	assert.IsErr(t, ErrInvalidQuorum, err)
}
