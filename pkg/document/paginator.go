package document

// Paginate distributes blocks over pages using greedy first-fit packing:
// blocks keep their order, each page is filled until the next block (plus the
// inter-block margin) would exceed the usable height, then a new page starts.
// A single block taller than the usable height still gets a page of its own
// and is allowed to overflow it.
func Paginate(blocks []Block, usableHeight, blockMargin float64) []Page {
	var pages []Page
	var current []Block
	used := 0.0

	flush := func() {
		if len(current) == 0 {
			return
		}
		pages = append(pages, Page{Number: len(pages) + 1, Blocks: current})
		current = nil
		used = 0
	}

	for _, block := range blocks {
		needed := block.Height
		if len(current) > 0 {
			needed += blockMargin
		}
		if len(current) > 0 && used+needed > usableHeight {
			flush()
			needed = block.Height
		}
		current = append(current, block)
		used += needed
	}
	flush()

	return pages
}
