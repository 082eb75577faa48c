// Package markdown converts page sources and helper blocks to HTML. The
// parser keeps fenced code blocks but never treats four-space indentation as
// code, so nested HTML produced by templates survives conversion, and image
// sources pointing at the static asset folder are rewritten to the site root.
package markdown
