package script

import (
	"fmt"

	"github.com/gobbles/stratum/pkg/stratum"
)

// InstrKind distinguishes a literal push from a named operator call.
type InstrKind int

const (
	InstrPush InstrKind = iota
	InstrOp
)

// Instruction is one step of a Program: either push a literal operand,
// or invoke a named operator against the top of the stack.
type Instruction struct {
	Kind    InstrKind
	Operand Operand
	Op      string
}

// PushValue pushes a literal Value.
func PushValue(v stratum.Value) Instruction {
	return Instruction{Kind: InstrPush, Operand: ValueOperand(v)}
}

// PushUsize pushes a literal non-negative integer.
func PushUsize(n uint64) Instruction { return Instruction{Kind: InstrPush, Operand: UsizeOperand(n)} }

// PushPredicate pushes a total unary test.
func PushPredicate(p Predicate) Instruction {
	return Instruction{Kind: InstrPush, Operand: PredicateOperand(p)}
}

// PushConverter pushes a fallible unary transform.
func PushConverter(c Converter) Instruction {
	return Instruction{Kind: InstrPush, Operand: ConverterOperand(c)}
}

// Op invokes the named operator, popping its arity from the stack and
// pushing its one result.
func Op(name string) Instruction { return Instruction{Kind: InstrOp, Op: name} }

// Program is a linear sequence of Instructions.
type Program []Instruction

// Run executes program against an initial stack, in ctx. A
// well-formed program started with an empty stack leaves exactly one
// operand; Run returns an error otherwise.
func Run(program Program, initial []Operand, ctx *Context) (Operand, error) {
	stack := append([]Operand(nil), initial...)

	for i, instr := range program {
		switch instr.Kind {
		case InstrPush:
			stack = append(stack, instr.Operand)

		case InstrOp:
			entry, err := lookup(instr.Op)
			if err != nil {
				return Operand{}, fmt.Errorf("instruction %d: %w", i, err)
			}
			if len(stack) < entry.arity {
				return Operand{}, fmt.Errorf("instruction %d: operator %q needs %d operands, stack has %d", i, instr.Op, entry.arity, len(stack))
			}
			args := stack[len(stack)-entry.arity:]
			stack = stack[:len(stack)-entry.arity]
			result, err := entry.fn(ctx, args)
			if err != nil {
				return Operand{}, fmt.Errorf("instruction %d (%s): %w", i, instr.Op, err)
			}
			stack = append(stack, result)
		}
	}

	if len(stack) != 1 {
		return Operand{}, fmt.Errorf("program left %d operands on the stack, expected 1", len(stack))
	}
	return stack[0], nil
}

// RunToValue is Run followed by forcing the result to a Value.
func RunToValue(program Program, initial []Operand, ctx *Context) (stratum.Value, error) {
	op, err := Run(program, initial, ctx)
	if err != nil {
		return stratum.Nil, err
	}
	return op.AsValue()
}
