package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLevel renders a 0..10 level as a ten-cell bar like
// [██████░░░░] 6/10, colored by LevelStyle.
func RenderLevel(level int, highIsGood bool) string {
	if level < 0 {
		level = 0
	}
	if level > 10 {
		level = 10
	}
	bar := strings.Repeat(filledBlock, level) + strings.Repeat(emptyBlock, 10-level)
	return fmt.Sprintf("[%s] %2d/10", LevelStyle(level, highIsGood).Render(bar), level)
}

// RenderProgress renders progress toward a goal like [████░░░░] 3/5.
func RenderProgress(done, goal, width int) string {
	if goal <= 0 {
		goal = 1
	}
	if done < 0 {
		done = 0
	}
	if done > goal {
		done = goal
	}
	if width < 2 {
		width = 2
	}
	filled := done * width / goal
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %d/%d", StyleGreen.Render(bar), done, goal)
}
