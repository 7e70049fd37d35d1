package rv32im

import (
	"errors"
	"testing"

	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/trace"
	"github.com/fasteater/risc0/pkg/util/assert"
)

// echoCallback always succeeds and echoes its inputs back as outputs.
func echoCallback(name, extra string, args, outs []field.Element) bool {
	copy(outs, args)
	//
	return true
}

// failAfter wraps a callback such that the nth invocation (and every one
// after it) is declined.
func failAfter(n uint, inner Callback) Callback {
	var count uint
	//
	return func(name, extra string, args, outs []field.Element) bool {
		count++
		//
		if count >= n {
			return false
		}
		//
		return inner(name, extra, args, outs)
	}
}

// newTestTrace builds a trace of the given height with the program counter
// column pre-populated 1..steps and fixed mix randomness.
func newTestTrace(steps uint) trace.ArgColumns {
	args := NewTrace(steps)
	//
	for cycle := uint(0); cycle < steps; cycle++ {
		args.Column(ColPC).Set(cycle, field.NewElement(uint64(cycle+1)))
		args.Column(ColMix0).Set(cycle, field.NewElement(5))
		args.Column(ColMix1).Set(cycle, field.NewElement(7))
	}
	//
	return args
}

func TestStepExec_EchoScenario(t *testing.T) {
	// Four steps, PC column pre-populated with [1,2,3,4], echoing host.  The
	// fetched "instruction" echoes the program counter (1), which decodes as
	// an add of two zero operands, so execution continues: the pinned status
	// is StatusRunning (1).
	args := newTestTrace(4)
	//
	status, err := StepExec(echoCallback, 4, 0, args)
	//
	assert.NoError(t, err)
	assert.True(t, status.Equal(&StatusRunning), "status %s, expected %s", status.String(), StatusRunning.String())
	// Derived columns committed for cycle 0
	insn := args.Column(ColInsn).Get(0)
	assert.Equal(t, uint32(1), field.Uint32(insn))
	selAdd := args.Column(ColSelAdd).Get(0)
	assert.Equal(t, uint32(1), field.Uint32(selAdd))
	rslt := args.Column(ColResult).Get(0)
	assert.Equal(t, uint32(0), field.Uint32(rslt))
	// PC chained into cycle 1
	pc := args.Column(ColPC).Get(1)
	assert.Equal(t, uint32(5), field.Uint32(pc))
}

func TestStepExec_Halt(t *testing.T) {
	// A zeroed PC fetches word zero, which decodes as halt.
	args := newTestTrace(4)
	args.Column(ColPC).Set(0, field.Zero())
	//
	status, err := StepExec(echoCallback, 4, 0, args)
	//
	assert.NoError(t, err)
	assert.True(t, status.Equal(&StatusHalted), "status %s, expected halt", status.String())
	// A halted cycle holds its program counter.
	pc := args.Column(ColPC).Get(1)
	assert.Equal(t, uint32(0), field.Uint32(pc))
}

func TestStep_CycleOutOfRange(t *testing.T) {
	args := newTestTrace(4)
	//
	for _, phase := range Phases {
		_, err := Step(phase, echoCallback, 4, 4, args)
		//
		assert.Error(t, err, "phase %s accepted cycle == steps", phase.String())
		assert.True(t, errors.Is(err, ErrInternalFault), "phase %s: wrong fault kind: %v", phase.String(), err)
		//
		_, err = Step(phase, echoCallback, 4, 100, args)
		assert.True(t, errors.Is(err, ErrInternalFault), "phase %s: wrong fault kind: %v", phase.String(), err)
	}
}

func TestStep_MalformedColumns(t *testing.T) {
	// Too few columns
	_, err := StepExec(echoCallback, 4, 0, NewTrace(4)[:3])
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
	// Wrong height
	_, err = StepExec(echoCallback, 8, 0, NewTrace(4))
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}

func TestStepExec_Deterministic(t *testing.T) {
	argsA := newTestTrace(4)
	argsB := argsA.Clone()
	//
	statusA, errA := StepExec(echoCallback, 4, 0, argsA)
	statusB, errB := StepExec(echoCallback, 4, 0, argsB)
	//
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.True(t, statusA.Equal(&statusB), "status differs between identical runs")
	assert.Equal(t, argsA, argsB)
}

func TestStepComputeAccum_Deterministic(t *testing.T) {
	// Scripted host: plonkRead always resolves the same access tuple.
	scripted := func(name, extra string, args, outs []field.Element) bool {
		for i := range outs {
			outs[i] = field.NewElement(uint64(i + 10))
		}
		//
		return true
	}
	//
	argsA := newTestTrace(4)
	argsB := argsA.Clone()
	//
	accumA, errA := StepComputeAccum(scripted, 4, 0, argsA)
	accumB, errB := StepComputeAccum(scripted, 4, 0, argsB)
	//
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.True(t, accumA.Equal(&accumB), "accumulator differs between identical runs")
	assert.Equal(t, argsA, argsB)
}

func TestStepExec_HostFailure(t *testing.T) {
	// The execute phase performs five callbacks for a non-halting cycle:
	// three ramReads and two plonkWrites.  Whichever one fails, the phase
	// must surface a host fault and leave every column untouched.
	for n := uint(1); n <= 5; n++ {
		var (
			args     = newTestTrace(4)
			snapshot = args.Clone()
		)
		//
		_, err := StepExec(failAfter(n, echoCallback), 4, 0, args)
		//
		assert.Error(t, err, "no error with host failing on call %d", n)
		assert.True(t, errors.Is(err, ErrHostFault), "wrong fault kind on call %d: %v", n, err)
		assert.Equal(t, snapshot, args, "columns mutated with host failing on call %d", n)
	}
}

func TestStepComputeAccum_HostFailure(t *testing.T) {
	var (
		args     = newTestTrace(4)
		snapshot = args.Clone()
	)
	//
	_, err := StepComputeAccum(failAfter(1, echoCallback), 4, 0, args)
	//
	assert.True(t, errors.Is(err, ErrHostFault), "wrong fault kind: %v", err)
	assert.Equal(t, snapshot, args)
}

func TestStepExec_IllegalOpcode(t *testing.T) {
	args := newTestTrace(4)
	// Fetch echoes the PC; 255 is not a valid opcode.
	args.Column(ColPC).Set(0, field.NewElement(255))
	//
	_, err := StepExec(echoCallback, 4, 0, args)
	//
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}
