package stratum

import (
	"errors"
	"os"
	"path/filepath"
)

// SidecarNaming resolves the file names used for each Target's
// sidecar, honoring config-supplied self_fn/item_fn overrides.
type SidecarNaming struct {
	SelfStem string
	ItemStem string
}

func readSidecar(dec Decoder, path string, target Target) (Schema, bool, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Schema{}, false, nil
		}
		return Schema{}, false, &IOError{Path: path, Err: err}
	}
	schema, err := dec.Decode(text, target)
	if err != nil {
		var mismatch *SchemaMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Path = path
			return Schema{}, false, mismatch
		}
		return Schema{}, false, &DecodeError{Path: path, Err: err}
	}
	return schema, true, nil
}

// ancestorSelfBlock reads dir's own Parent sidecar, if present. A
// non-directory (a file item) has no Parent sidecar of its own.
func ancestorSelfBlock(dec Decoder, dir string, naming SidecarNaming) (*Block, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, nil
	}
	name := SidecarName(TargetParent, dec, naming.SelfStem, naming.ItemStem)
	schema, ok, err := readSidecar(dec, filepath.Join(dir, name), TargetParent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	block, err := schema.One()
	if err != nil {
		return nil, &SchemaMismatchError{Path: filepath.Join(dir, name), Target: TargetParent}
	}
	return block, nil
}

// ancestorSiblingBlock reads the Siblings sidecar of dir's parent
// directory, plexes it against the parent directory's selected,
// sorted children, and extracts the block keyed to dir.
func ancestorSiblingBlock(dec Decoder, dir string, selection Selection, sorter Sorter, naming SidecarNaming) (*Block, error) {
	parent := filepath.Dir(dir)
	if parent == dir {
		return nil, nil
	}
	name := SidecarName(TargetSiblings, dec, naming.SelfStem, naming.ItemStem)
	schema, ok, err := readSidecar(dec, filepath.Join(parent, name), TargetSiblings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if schema.Kind() != SchemaSeq && schema.Kind() != SchemaMap {
		return nil, &SchemaMismatchError{Path: filepath.Join(parent, name), Target: TargetSiblings}
	}

	results, err := selection.SelectInDirSorted(parent, sorter)
	if err != nil {
		return nil, err
	}
	var siblingPaths []string
	for _, r := range results {
		if r.Err == nil {
			siblingPaths = append(siblingPaths, r.Path)
		}
	}

	plexer := NewPlexer(schema, &sliceIterator{paths: siblingPaths}, sorter)
	for {
		res, ok := plexer.Next()
		if !ok {
			return nil, nil
		}
		if res.Err != nil {
			continue
		}
		if res.Path == dir {
			return res.Block, nil
		}
	}
}

// ProcessItem produces the flattened block for path: every level from
// the filesystem root down to path itself contributes a block (its entry
// in its parent's Siblings sidecar overlaid by its own Parent sidecar,
// self winning ties at that level; a file item has only the former),
// and more specific (deeper) levels override less specific ones key by
// key.
func ProcessItem(path string, selection Selection, sorter Sorter, dec Decoder, naming SidecarNaming) (*Block, error) {
	var ancestors []string
	walker := NewParentWalker(path)
	for walker.Next() {
		ancestors = append(ancestors, walker.Path())
	}
	// ancestors is leaf-to-root; reverse to root-to-leaf so the merge
	// below applies in least-to-most specific order.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	flattened := NewBlock()
	for _, dir := range ancestors {
		if !selection.IsDirMatch(dir) {
			continue
		}

		level := NewBlock()
		siblingBlock, err := ancestorSiblingBlock(dec, dir, selection, sorter, naming)
		if err != nil {
			return nil, &CannotProcessMetadataError{Path: path, Err: err}
		}
		MergeInto(level, siblingBlock)

		selfBlock, err := ancestorSelfBlock(dec, dir, naming)
		if err != nil {
			return nil, &CannotProcessMetadataError{Path: path, Err: err}
		}
		MergeInto(level, selfBlock)

		MergeInto(flattened, level)
	}

	return flattened, nil
}
