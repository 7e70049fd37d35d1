package rv32im

import (
	"errors"
	"testing"

	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/trace"
	"github.com/fasteater/risc0/pkg/util/assert"
)

// encode packs an operation and two operand addresses into an instruction
// word.
func encode(op uint32, addrA, addrB uint32) uint32 {
	return op | (addrA << 8) | (addrB << 20)
}

// testImage is a small program: add, sub, mul over three data words, then
// halt.  Trailing cycles refetch the halt instruction.
func testImage() map[uint32]uint32 {
	return map[uint32]uint32{
		0:  encode(OpAdd, 0x100, 0x101),
		4:  encode(OpSub, 0x102, 0x100),
		8:  encode(OpMul, 0x101, 0x102),
		12: encode(OpHalt, 0, 0),
		//
		0x100: 7,
		0x101: 9,
		0x102: 100,
	}
}

// runPipeline drives the execute and compute-accumulator phases over every
// cycle, with the host sorting its access log in between, and returns the
// filled trace together with the host.
func runPipeline(t *testing.T, image map[uint32]uint32, steps uint) (trace.ArgColumns, *ImageHost) {
	var (
		host     = NewImageHost(image)
		callback = host.Callback()
		args     = NewTrace(steps)
	)
	//
	for cycle := uint(0); cycle < steps; cycle++ {
		args.Column(ColMix0).Set(cycle, field.NewElement(5))
		args.Column(ColMix1).Set(cycle, field.NewElement(7))
	}
	//
	for cycle := uint(0); cycle < steps; cycle++ {
		_, err := StepExec(callback, steps, cycle, args)
		assert.NoError(t, err, "exec failed at cycle %d", cycle)
	}
	//
	host.SortTable("ram")
	//
	for cycle := uint(0); cycle < steps; cycle++ {
		_, err := StepComputeAccum(callback, steps, cycle, args)
		assert.NoError(t, err, "compute_accum failed at cycle %d", cycle)
	}
	//
	return args, host
}

func TestPipeline_Execute(t *testing.T) {
	args, _ := runPipeline(t, testImage(), 8)
	// 7+9, 100-7, 9*100, then halted
	expected := []uint32{16, 93, 900, 0, 0, 0, 0, 0}
	//
	for cycle, value := range expected {
		result := args.Column(ColResult).Get(uint(cycle))
		assert.Equal(t, value, field.Uint32(result), "wrong result at cycle %d", cycle)
	}
	// Program counter chain: 0,4,8,12 then held
	expectedPC := []uint32{0, 4, 8, 12, 12, 12, 12, 12}
	//
	for cycle, value := range expectedPC {
		pc := args.Column(ColPC).Get(uint(cycle))
		assert.Equal(t, value, field.Uint32(pc), "wrong pc at cycle %d", cycle)
	}
}

func TestPipeline_VerifyPhasesAccept(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	callback := host.Callback()
	//
	for _, phase := range []Phase{PhaseVerifyAccum, PhaseVerifyBytes, PhaseVerifyMem} {
		snapshot := args.Clone()
		//
		for cycle := uint(0); cycle < 8; cycle++ {
			_, err := Step(phase, callback, 8, cycle, args)
			assert.NoError(t, err, "%s rejected honest trace at cycle %d", phase.String(), cycle)
		}
		// Verification phases never mutate trace state.
		assert.Equal(t, snapshot, args, "%s mutated the trace", phase.String())
	}
}

func TestVerifyAccum_DetectsCorruption(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	// Tamper with the grand product mid-way.
	var tampered field.Element
	//
	accum := args.Column(ColAccum).Get(2)
	one := field.One()
	tampered.Add(&accum, &one)
	args.Column(ColAccum).Set(2, tampered)
	//
	_, err := StepVerifyAccum(host.Callback(), 8, 2, args)
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}

func TestVerifyBytes_DetectsCorruption(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	// Invalidate the recomposition at cycle 0.
	args.Column(ColByte0).Set(0, field.NewElement(17))
	//
	_, err := StepVerifyBytes(host.Callback(), 8, 0, args)
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}

func TestVerifyBytes_DetectsRangeViolation(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	// A "byte" of 256+16 recomposes correctly against a suitably bumped
	// result, but is out of range.
	var (
		bumped field.Element
		delta  = field.NewElement(256)
	)
	//
	result := args.Column(ColResult).Get(0)
	bumped.Add(&result, &delta)
	args.Column(ColResult).Set(0, bumped)
	args.Column(ColByte0).Set(0, field.NewElement(16+256))
	//
	_, err := StepVerifyBytes(host.Callback(), 8, 0, args)
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}

func TestVerifyMem_DetectsDisorder(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	// Swap two sorted access rows, breaking the address ordering.
	for _, col := range []uint{ColRamAddr, ColRamValue, ColRamCycle} {
		var (
			a = args.Column(col).Get(1)
			b = args.Column(col).Get(2)
		)
		//
		args.Column(col).Set(1, b)
		args.Column(col).Set(2, a)
	}
	//
	_, err := StepVerifyMem(host.Callback(), 8, 2, args)
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}

func TestVerifyMem_DetectsValueChange(t *testing.T) {
	args, host := runPipeline(t, testImage(), 8)
	// Change an access value: the host cross-check must catch it.
	args.Column(ColRamValue).Set(3, field.NewElement(12345))
	//
	_, err := StepVerifyMem(host.Callback(), 8, 3, args)
	assert.True(t, errors.Is(err, ErrInternalFault), "wrong fault kind: %v", err)
}
