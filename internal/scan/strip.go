package scan

import "regexp"

// Only comments that begin a line (after optional indentation) are
// stripped; trailing comments stay in place so the surrounding text
// keeps its byte offsets intact.
var (
	blockCommentRE = regexp.MustCompile(`(?ms)^[ \t]*/\*.*?\*/(?:\r?\n)?`)
	lineCommentRE  = regexp.MustCompile(`(?m)^[ \t]*--.*(?:\r?\n)?`)
)

// StripComments removes line-leading SQL comments from sql. Block
// comments are removed first so that a "--" inside a block comment
// cannot leave a dangling fragment behind.
func StripComments(sql string) string {
	sql = blockCommentRE.ReplaceAllString(sql, "")
	return lineCommentRE.ReplaceAllString(sql, "")
}
