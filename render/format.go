package render

// Fence is the marker pair wrapping output as a preformatted block in
// lightweight markup.
const Fence = "```"

// Format optionally wraps rendered table text in fence markers. Empty
// input stays empty regardless of the flag: nothing is never wrapped.
func Format(tableText string, fenced bool) string {
	if tableText == "" || !fenced {
		return tableText
	}
	return Fence + "\n" + tableText + Fence
}
