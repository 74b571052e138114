package script

import "github.com/gobbles/stratum/pkg/stratum"

// Context is the resolver context a nullary operator draws on to seed
// a value stream: the item path the program is running against, the
// selection/sorter/decoder/naming it resolves sidecars with, and the
// key path each produced block is projected through.
type Context struct {
	ItemPath  string
	Selection stratum.Selection
	Sorter    stratum.Sorter
	Decoder   stratum.Decoder
	Naming    stratum.SidecarNaming
	KeyPath   stratum.KeyPath
}

func projectBlock(block *stratum.Block, kp stratum.KeyPath) (stratum.Value, bool) {
	return kp.Resolve(stratum.BlockAsValue(block))
}

// opParents seeds a stream of values found at ctx.KeyPath across
// ctx.ItemPath's ancestors, root-ward, via the parent walker.
func opParents(ctx *Context) (Operand, error) {
	if ctx == nil {
		return Operand{}, stratum.ErrNotIterable
	}
	walker := stratum.NewParentWalker(ctx.ItemPath)
	next := func() (stratum.Value, bool, error) {
		for walker.Next() {
			p := walker.Path()
			block, err := stratum.ProcessItem(p, ctx.Selection, ctx.Sorter, ctx.Decoder, ctx.Naming)
			if err != nil {
				return stratum.Nil, false, err
			}
			v, ok := projectBlock(block, ctx.KeyPath)
			if !ok {
				continue
			}
			return v, true, nil
		}
		return stratum.Nil, false, nil
	}
	return StreamOperand(next), nil
}

// opChildren seeds a stream of values found at ctx.KeyPath across
// ctx.ItemPath's descendants, DFS pre-order, via the child walker.
func opChildren(ctx *Context) (Operand, error) {
	if ctx == nil {
		return Operand{}, stratum.ErrNotIterable
	}
	walker := stratum.NewChildWalker(ctx.ItemPath, ctx.Selection, ctx.Sorter)
	next := func() (stratum.Value, bool, error) {
		for walker.Next() {
			if err := walker.Err(); err != nil {
				return stratum.Nil, false, err
			}
			p := walker.Path()
			block, err := stratum.ProcessItem(p, ctx.Selection, ctx.Sorter, ctx.Decoder, ctx.Naming)
			if err != nil {
				return stratum.Nil, false, err
			}
			v, ok := projectBlock(block, ctx.KeyPath)
			if !ok {
				continue
			}
			return v, true, nil
		}
		return stratum.Nil, false, nil
	}
	return StreamOperand(next), nil
}
