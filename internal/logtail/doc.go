// Package logtail reads the tail of the sheetdash log file for the logs
// command.
//
// Read keeps a ring buffer of the last maxLines lines, so large files are
// scanned once without being held in memory. Tail parses each line as a
// logrus JSON entry; lines written with the text formatter are passed
// through untouched in Entry.Raw.
//
//	entries, err := logtail.Tail(path, 200)
//	for _, e := range logtail.Filter(entries, logrus.WarnLevel) {
//		fmt.Println(logtail.Format(e, false))
//	}
package logtail
