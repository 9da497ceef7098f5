package game

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// StatsLine summarizes world bookkeeping and process memory for the periodic
// log line. rss is in bytes; zero omits it.
func (g *Context) StatsLine(rss uint64) string {
	s := g.World.Stats()
	line := fmt.Sprintf("frames=%s columns=%d cached=%d queued=%d generated=%d restored=%d rebuilt=%s edits=%d dropped=%d",
		humanize.Comma(int64(g.frames)),
		s.LoadedColumns, s.CachedColumns, s.QueuedRebuilds,
		s.Generated, s.Restored, humanize.Comma(int64(s.Rebuilt)),
		s.Edits, s.DroppedEdits)
	if rss > 0 {
		line += " rss=" + humanize.IBytes(rss)
	}
	return line
}
