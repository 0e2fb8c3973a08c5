// Package markup renders Confluence storage-format XHTML for terminals and
// assistants. PlainText gives one trimmed line per block; Markdown goes
// through html-to-markdown. Both drop scripts, styles and macro parameters
// and keep code macro bodies verbatim.
package markup
