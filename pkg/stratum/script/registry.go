package script

import "fmt"

// opFunc is the uniform shape every registered operator is adapted to:
// given the resolver context and its popped arguments (in push order,
// bottom of the popped span first), produce one result operand.
type opFunc func(ctx *Context, args []Operand) (Operand, error)

type opEntry struct {
	arity int
	fn    opFunc
}

func iterableArg(args []Operand, i int) (Iterable, error) { return AsIterable(args[i]) }

func usizeArg(args []Operand, i int) (uint64, error) { return args[i].AsUsize() }

func predicateArg(args []Operand, i int) (Predicate, error) { return args[i].AsPredicate() }

func converterArg(args []Operand, i int) (Converter, error) { return args[i].AsConverter() }

var registry = map[string]opEntry{
	"parents":  {0, func(ctx *Context, args []Operand) (Operand, error) { return opParents(ctx) }},
	"children": {0, func(ctx *Context, args []Operand) (Operand, error) { return opChildren(ctx) }},

	"collect":   {1, unary(opCollect)},
	"count":     {1, unary(opCount)},
	"first":     {1, unary(opFirst)},
	"last":      {1, unary(opLast)},
	"max":       {1, unary(opMax)},
	"min":       {1, unary(opMin)},
	"sum":       {1, unary(opSum)},
	"product":   {1, unary(opProduct)},
	"all_equal": {1, unary(opAllEqual)},
	"sort":      {1, unary(opSort)},
	"rev":       {1, unary(opRev)},
	"flatten":   {1, unary(opFlatten)},
	"dedup":     {1, unary(opDedup)},
	"unique":    {1, unary(opUnique)},

	"nth": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		n, err := usizeArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opNth(it, n)
	}},
	"step_by": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		n, err := usizeArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opStepBy(it, n)
	}},
	"skip": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		n, err := usizeArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opSkip(it, n)
	}},
	"take": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		n, err := usizeArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opTake(it, n)
	}},
	"filter": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opFilter(it, pred)
	}},
	"map": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		conv, err := converterArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opMap(it, conv)
	}},
	"skip_while": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opSkipWhile(it, pred)
	}},
	"take_while": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opTakeWhile(it, pred)
	}},
	"all": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opAll(it, pred)
	}},
	"any": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opAny(it, pred)
	}},
	"find": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opFind(it, pred)
	}},
	"position": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		pred, err := predicateArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opPosition(it, pred)
	}},
	"chain": {2, func(ctx *Context, args []Operand) (Operand, error) {
		a, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		b, err := iterableArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opChain(a, b)
	}},
	"zip": {2, func(ctx *Context, args []Operand) (Operand, error) {
		a, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		b, err := iterableArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opZip(a, b)
	}},
	"interleave": {2, func(ctx *Context, args []Operand) (Operand, error) {
		a, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		b, err := iterableArg(args, 1)
		if err != nil {
			return Operand{}, err
		}
		return opInterleave(a, b)
	}},
	"intersperse": {2, func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		sep, err := args[1].AsValue()
		if err != nil {
			return Operand{}, err
		}
		return opIntersperse(it, sep)
	}},
}

// unary adapts a unaryOp (Iterable -> Operand) to opFunc.
func unary(fn unaryOp) opFunc {
	return func(ctx *Context, args []Operand) (Operand, error) {
		it, err := iterableArg(args, 0)
		if err != nil {
			return Operand{}, err
		}
		return fn(it)
	}
}

// lookup resolves name to its registered arity and implementation.
func lookup(name string) (opEntry, error) {
	e, ok := registry[name]
	if !ok {
		return opEntry{}, fmt.Errorf("unknown operator %q", name)
	}
	return e, nil
}
