// Package scan builds book manifests from folders of MP3 files.
//
// # Scanner
//
// The Scanner turns an album folder into a book:
//
//  1. List the MP3 files in natural order ("2.mp3" before "10.mp3")
//  2. Read their ID3 tags concurrently
//  3. Order pages by track number when every file has a distinct one
//  4. Take the book title and artist from the album tags
//  5. Use an existing cover image, or extract the embedded one (optional)
//
// # Basic Usage
//
//	scanner := scan.NewScanner(
//	    scan.WithConcurrency(settings.ScanConcurrency),
//	    scan.WithContents(true),
//	    scan.WithProgress(func(event scan.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    }),
//	)
//
//	m, err := scanner.Scan(ctx, "/music/Winterreise")
//	if m == nil {
//	    log.Fatal(err)
//	}
//	if err != nil {
//	    log.Println("some files were skipped:", err)
//	}
//	err = m.Save("/music/Winterreise/musicbook.yaml")
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package scan
