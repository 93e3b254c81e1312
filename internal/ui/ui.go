package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/vocabgo/internal/engine"
	"github.com/example/vocabgo/internal/selector"
	"github.com/example/vocabgo/pkg/models"
)

// UI is the interactive terminal loop: it presents words, collects recall
// grades and forwards them to the engine. It holds no learner state of its
// own.
type UI struct {
	engine *engine.Engine
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a UI reading commands from in and writing to out
func New(e *engine.Engine, in io.Reader, out io.Writer) *UI {
	return &UI{engine: e, in: bufio.NewScanner(in), out: out}
}

// Run drives the session until the learner quits or input ends. Progress is
// saved on the way out.
func (u *UI) Run() error {
	if err := u.chooseList(); err != nil {
		return err
	}

	for {
		u.banner()

		sel, err := u.engine.Next()
		switch {
		case errors.Is(err, selector.ErrNoLearnedWords):
			fmt.Fprintln(u.out, "\nThis list has no learned words to review.")
			if u.engine.ReviewOnly() {
				fmt.Fprintln(u.out, "Switching back to learning mode.")
				if err := u.engine.SetReviewOnly(false); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(u.out, "The daily quota for new words is used up; come back tomorrow.")
			u.pause()
			return u.engine.SaveAll()
		case errors.Is(err, selector.ErrNoWords):
			fmt.Fprintln(u.out, "\nThis list has no words; pick another one.")
			if err := u.chooseList(); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		quit, err := u.round(sel)
		if err != nil {
			return err
		}
		if quit {
			return u.engine.SaveAll()
		}
	}
}

// round presents one selection and dispatches the chosen command. It
// returns true when the learner asked to quit.
func (u *UI) round(sel *models.SelectionResult) (bool, error) {
	if sel.IsNew {
		fmt.Fprintf(u.out, "\nNew word: %s\n", sel.Word)
	} else {
		fmt.Fprintf(u.out, "\nReview: %s\n", sel.Word)
	}

	for {
		cmd, ok := u.prompt("u=knew it  d=show translation  s=stats  m=mode  c=lists  x=reset  h=history  q=quit: ")
		if !ok {
			return true, nil
		}

		switch cmd {
		case "u":
			return false, u.engine.Confirm(sel, 5)
		case "d":
			return false, u.explain(sel)
		case "s":
			if err := u.showStats(); err != nil {
				return false, err
			}
			return false, nil
		case "m":
			if err := u.engine.SetReviewOnly(!u.engine.ReviewOnly()); err != nil {
				return false, err
			}
			return false, nil
		case "c":
			if err := u.engine.SaveAll(); err != nil {
				return false, err
			}
			return false, u.chooseList()
		case "x":
			return false, u.resetCurrent()
		case "h":
			if err := u.showHistory(); err != nil {
				return false, err
			}
			return false, nil
		case "q":
			return true, nil
		default:
			fmt.Fprintln(u.out, "Unknown command.")
		}
	}
}

// explain shows the translation, then grades the recall. A brand-new word is
// graded 0: the learner had to look at the answer.
func (u *UI) explain(sel *models.SelectionResult) error {
	fmt.Fprintf(u.out, "\n%s: %s\n", sel.Word, sel.Translation)

	if sel.IsNew {
		u.prompt("Press enter to continue...")
		return u.engine.Confirm(sel, 0)
	}

	fmt.Fprintf(u.out, "ease factor: %.2f\n", sel.State.EaseFactor)
	fmt.Fprintf(u.out, "interval: %.1f days\n", sel.State.IntervalDays)
	fmt.Fprintf(u.out, "last review: %s\n", humanizeSince(sel.State.LastReviewEpochMs, time.Now()))

	for {
		raw, ok := u.prompt("Recall quality (0 = blank ... 5 = instant): ")
		if !ok {
			return nil
		}
		quality, err := strconv.Atoi(raw)
		if err != nil || quality < 0 || quality > 5 {
			fmt.Fprintln(u.out, "Enter a number between 0 and 5.")
			continue
		}
		return u.engine.Confirm(sel, quality)
	}
}

// chooseList shows the numbered lists and selects the learner's pick
func (u *UI) chooseList() error {
	lists, err := u.engine.Lists()
	if err != nil {
		return err
	}

	fmt.Fprintln(u.out, "\nWord lists:")
	for i, l := range lists {
		fmt.Fprintf(u.out, "  %d. %s\n", i+1, l.Name)
	}

	for {
		raw, ok := u.prompt("Pick a list by number (q to quit): ")
		if !ok || raw == "q" {
			return io.EOF
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(lists) {
			fmt.Fprintln(u.out, "Enter a valid number.")
			continue
		}
		if _, err := u.engine.SelectList(lists[n-1].Name); err != nil {
			return err
		}
		return nil
	}
}

func (u *UI) resetCurrent() error {
	cur := u.engine.Current()
	if cur == nil {
		return nil
	}
	fmt.Fprintf(u.out, "\nThis deletes all progress for %q and cannot be undone.\n", cur.Name)
	for {
		raw, ok := u.prompt("Reset? (y/n): ")
		if !ok || raw == "n" {
			return nil
		}
		if raw == "y" {
			existed, err := u.engine.ResetList(cur.Name)
			if err != nil {
				return err
			}
			if existed {
				fmt.Fprintf(u.out, "Progress for %q reset.\n", cur.Name)
			} else {
				fmt.Fprintf(u.out, "No progress recorded for %q yet.\n", cur.Name)
			}
			return nil
		}
		fmt.Fprintln(u.out, "Enter y or n.")
	}
}

func (u *UI) showStats() error {
	// Flush the active list first so its numbers are current
	if err := u.engine.SaveAll(); err != nil {
		return err
	}
	stats, err := u.engine.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(u.out, "\nNo word lists with entries found.")
		return nil
	}

	fmt.Fprintln(u.out, "\nProgress by list:")
	fmt.Fprintf(u.out, "%-20s %-12s %-10s %s\n", "list", "learned", "share", "mastered")
	for _, s := range stats {
		fmt.Fprintf(u.out, "%-20s %d/%-10d %5.1f%%    %5.1f%%\n",
			s.Name, s.LearnedCount, s.TotalCount, s.LearnedRatio*100, s.MasteryRatio*100)
	}
	u.pause()
	return nil
}

func (u *UI) showHistory() error {
	events, err := u.engine.RecentHistory(10)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(u.out, "\nNo reviews recorded yet.")
		return nil
	}

	fmt.Fprintln(u.out, "\nRecent reviews:")
	for _, ev := range events {
		at := time.UnixMilli(ev.ReviewedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(u.out, "  %s  %-15s q=%d  interval %.1fd\n", at, ev.Word, ev.Quality, ev.IntervalDays)
	}
	u.pause()
	return nil
}

// banner prints the session header for the active list
func (u *UI) banner() {
	cur := u.engine.Current()
	if cur == nil {
		return
	}
	snap := u.engine.Snapshot()
	q := u.engine.Quota()

	mode := "learning"
	if u.engine.ReviewOnly() {
		mode = "review only"
	}

	fmt.Fprintln(u.out, "\n====================")
	fmt.Fprintf(u.out, "List: %s (%d/%d)\n", cur.Name, len(snap.LearnedStates), snap.TotalCount)
	fmt.Fprintf(u.out, "Mode: %s\n", mode)
	fmt.Fprintf(u.out, "New words today: %d/%d\n", q.Count, q.Limit)
	fmt.Fprintln(u.out, "====================")
}

// prompt writes a prompt and reads one trimmed, lowercased line. ok is false
// when input is exhausted.
func (u *UI) prompt(text string) (string, bool) {
	fmt.Fprint(u.out, text)
	if !u.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(u.in.Text())), true
}

// pause waits for enter
func (u *UI) pause() {
	u.prompt("Press enter to continue...")
}

// humanizeSince renders a last-review timestamp the way a learner thinks
// about it
func humanizeSince(epochMs int64, now time.Time) string {
	at := time.UnixMilli(epochMs)
	hours := now.Sub(at).Hours()
	switch {
	case hours > 48:
		return fmt.Sprintf("%s (%d days ago)", at.Format("2006-01-02 15:04"), int(hours/24))
	case hours > 1:
		return fmt.Sprintf("%s (%d hours ago)", at.Format("2006-01-02 15:04"), int(hours))
	default:
		return fmt.Sprintf("%s (just now)", at.Format("2006-01-02 15:04"))
	}
}
