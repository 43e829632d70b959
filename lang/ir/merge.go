package ir

// Merge concatenates the blocks of each IR in irs into a single IR, first
// file first. A block name repeated across inputs fails with
// DuplicateBlock.
func Merge(irs ...*IR) (*IR, error) {
	out := NewIR()
	for _, in := range irs {
		for _, b := range in.Blocks {
			if _, err := out.AddBlock(b); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
