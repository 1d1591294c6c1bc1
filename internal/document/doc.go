// Package document holds the read-only text a viewing session navigates.
//
// A Store is loaded once at startup from an optional file path and never
// mutated afterwards. Lines are kept exactly as they appear in the file,
// minus their line terminators:
//
//	store, err := document.Load("notes.txt")
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < store.LineCount(); i++ {
//	    line, _ := store.LineAt(i)
//	    fmt.Println(line)
//	}
//
// An empty path yields an empty store, which is a distinct valid state:
// the renderer shows a welcome banner instead of content.
package document
