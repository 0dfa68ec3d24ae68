package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/portyard/yardboard/internal/model"
)

var disLoadPattern = regexp.MustCompile(`(?i)Dis/Load[:\s]*([0-9., ]+?)\s*[/|\\]\s*([0-9., ]+)`)

type vesselMention struct {
	name   string
	offset int
}

type disLoadFigure struct {
	discharge int
	load      int
	offset    int
}

// vesselPattern matches name case-insensitively with any run of whitespace,
// including line breaks, between its words.
func vesselPattern(name string) *regexp.Regexp {
	words := strings.Fields(name)
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(words, `[\s\p{Zs}]+`))
}

func findVesselMentions(text string, vessels []string) []vesselMention {
	mentions := make([]vesselMention, 0)
	for _, v := range vessels {
		re := vesselPattern(v)
		if re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			mentions = append(mentions, vesselMention{name: v, offset: loc[0]})
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		if mentions[i].offset != mentions[j].offset {
			return mentions[i].offset < mentions[j].offset
		}
		return len(mentions[i].name) > len(mentions[j].name)
	})
	return mentions
}

// parseFigure keeps only the digits; separators are never decimal points.
func parseFigure(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

func findDisLoadFigures(text string) []disLoadFigure {
	matches := disLoadPattern.FindAllStringSubmatchIndex(text, -1)
	figures := make([]disLoadFigure, 0, len(matches))
	for _, m := range matches {
		figures = append(figures, disLoadFigure{
			discharge: parseFigure(text[m[2]:m[3]]),
			load:      parseFigure(text[m[4]:m[5]]),
			offset:    m[0],
		})
	}
	return figures
}

// nearestPreceding returns the mention closest before offset. Among mentions at
// the same position the longest name wins. mentions must be sorted.
func nearestPreceding(mentions []vesselMention, offset int) (vesselMention, bool) {
	idx := sort.Search(len(mentions), func(i int) bool {
		return mentions[i].offset >= offset
	}) - 1
	if idx < 0 {
		return vesselMention{}, false
	}
	at := mentions[idx].offset
	for idx > 0 && mentions[idx-1].offset == at {
		idx--
	}
	return mentions[idx], true
}

// ExtractSchedule associates every Dis/Load figure in text with the nearest known
// vessel mentioned before it. A vessel keeps its first figure; figures with no
// preceding vessel are dropped.
func ExtractSchedule(text string, vessels []string) []*model.ScheduleData {
	mentions := findVesselMentions(text, vessels)
	schedule := make([]*model.ScheduleData, 0)
	seen := make(map[string]struct{})

	for _, fig := range findDisLoadFigures(text) {
		m, ok := nearestPreceding(mentions, fig.offset)
		if !ok {
			continue
		}
		if _, dup := seen[m.name]; dup {
			continue
		}
		seen[m.name] = struct{}{}
		schedule = append(schedule, &model.ScheduleData{
			VesselName: m.name,
			Discharge:  fig.discharge,
			Load:       fig.load,
		})
	}
	return schedule
}
