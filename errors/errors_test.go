package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when registering a used code")
		}
	}()
	Register(2, "my fancy duplicate")
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind    *Error
		err     error
		wantIs  bool
	}{
		"instance of the same root error": {
			kind:   ErrNotFound,
			err:    ErrNotFound,
			wantIs: true,
		},
		"wrapped root error": {
			kind:   ErrNotFound,
			err:    Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"deeply wrapped root error": {
			kind:   ErrNotFound,
			err:    Wrap(Wrap(ErrNotFound, "gone"), "outer"),
			wantIs: true,
		},
		"different root error": {
			kind:   ErrNotFound,
			err:    ErrUnauthorized,
			wantIs: false,
		},
		"stdlib error": {
			kind:   ErrNotFound,
			err:    fmt.Errorf("not found"),
			wantIs: false,
		},
		"nil error": {
			kind:   ErrNotFound,
			err:    nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("unexpected match result: %v", got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err      error
		wantCode uint32
	}{
		"root error": {
			err:      ErrUnauthorized,
			wantCode: 2,
		},
		"wrapped error": {
			err:      Wrap(ErrState, "locked"),
			wantCode: 10,
		},
		"non registered error": {
			err:      fmt.Errorf("boom"),
			wantCode: 1,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.wantCode {
				t.Fatalf("want code %d, got %d", tc.wantCode, got)
			}
		})
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrInput, "inner")
	if stackTrace(err) == nil {
		t.Fatal("expected a stack trace to be attached")
	}
	// A second wrap must reuse the existing trace instead of attaching
	// a new one at the wrong frame.
	outer := Wrap(err, "outer")
	if fmt.Sprintf("%v", stackTrace(outer)[0]) != fmt.Sprintf("%v", stackTrace(err)[0]) {
		t.Fatal("stack trace must be preserved by outer wraps")
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("kaboom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}

func TestWrappedErrorMessage(t *testing.T) {
	err := Wrap(pkgerrors.New("root"), "context")
	if got, want := err.Error(), "context: root"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
