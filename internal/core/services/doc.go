// Package services implements the driving ports on top of the driven ones.
//
// ImportService turns a source (URL, path or raw text) into a stored novel:
// fetch, parse, post-process, choose a free slug, persist. LibraryService
// lists, reads and edits what is stored; BookmarkService keeps one reading
// position per novel; SettingsService maps the flat config keys onto
// domain.AppSettings. Services hold no I/O of their own.
package services
