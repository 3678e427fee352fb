// Package driven defines what the folio core needs from the outside world.
//
// Services receive these interfaces at construction time; the adapters
// under internal/adapters/driven implement them.
//
//   - Fetcher turns a source reference into decoded text (HTTP or local file).
//   - NovelStore persists novels and their chapters.
//   - BookmarkStore keeps one reading position per novel.
//   - ConfigStore reads and writes the flat settings keys.
//   - ChapterPipeline is optional; without it chapters are stored exactly
//     as the segmenter produced them.
//
// This package imports domain and nothing else from internal/.
package driven
