package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/observability"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

// Schedule owns the vessel discharge/load table, the raw text it was extracted
// from and the vessel selection driving the statistics views.
type Schedule struct {
	state     StateStore
	sync      *Sync
	yard      *Yard
	extractor *TextExtractor
	archive   *Archive

	highlightLimit int

	mu        sync.RWMutex
	entries   []*model.ScheduleData
	rawText   string
	selection []string
}

func NewSchedule(conf *appconfig.Config, state StateStore, sync *Sync, yard *Yard, extractor *TextExtractor, archive *Archive) *Schedule {
	return &Schedule{
		state:          state,
		sync:           sync,
		yard:           yard,
		extractor:      extractor,
		archive:        archive,
		highlightLimit: conf.HighlightLimit,
		entries:        []*model.ScheduleData{},
		selection:      []string{},
	}
}

func (s *Schedule) Restore(ctx context.Context) error {
	var entries []*model.ScheduleData
	var rawText string
	var selection []string
	if _, err := loadState(ctx, s.state, repo.StateKeySchedule, &entries); err != nil {
		return err
	}
	if _, err := loadState(ctx, s.state, repo.StateKeyScheduleText, &rawText); err != nil {
		return err
	}
	if _, err := loadState(ctx, s.state, repo.StateKeySelection, &selection); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entries != nil {
		s.entries = entries
	}
	if selection != nil {
		s.selection = selection
	}
	s.rawText = rawText
	return nil
}

func (s *Schedule) Entries() []*model.ScheduleData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.ScheduleData{}, s.entries...)
}

func (s *Schedule) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rawText
}

// Replace swaps the whole schedule table and pushes every entry to the cloud.
func (s *Schedule) Replace(ctx context.Context, entries []*model.ScheduleData) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	saveState(ctx, s.state, repo.StateKeySchedule, entries)
	for _, e := range entries {
		s.sync.Push(repo.TableSchedule, e.VesselName, e)
	}
}

// ReplaceFromCloud installs a schedule fetched from the cloud without pushing it back.
func (s *Schedule) ReplaceFromCloud(ctx context.Context, entries []*model.ScheduleData) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	saveState(ctx, s.state, repo.StateKeySchedule, entries)
}

// ApplyRemote upserts one entry received from another instance, keyed by vessel name.
func (s *Schedule) ApplyRemote(ctx context.Context, entry *model.ScheduleData) {
	s.mu.Lock()
	idx := lo.IndexOf(lo.Map(s.entries, func(e *model.ScheduleData, _ int) string { return e.VesselName }), entry.VesselName)
	next := append([]*model.ScheduleData{}, s.entries...)
	if idx >= 0 {
		next[idx] = entry
	} else {
		next = append(next, entry)
	}
	s.entries = next
	s.mu.Unlock()

	saveState(ctx, s.state, repo.StateKeySchedule, next)
}

// SetText caches raw schedule text for a later Parse.
func (s *Schedule) SetText(ctx context.Context, text string) {
	s.mu.Lock()
	s.rawText = text
	s.mu.Unlock()
	saveState(ctx, s.state, repo.StateKeyScheduleText, text)
}

// Parse extracts a schedule from text, or from the cached text when text is
// blank, and replaces the current table with it. Vessels found are added to
// the selection.
func (s *Schedule) Parse(ctx context.Context, text string) (*model.ScheduleParseResult, error) {
	if strings.TrimSpace(text) == "" {
		text = s.Text()
	} else {
		s.SetText(ctx, text)
	}
	if strings.TrimSpace(text) == "" {
		return nil, yderr.ErrInvalidReq.Msg("no schedule text to parse")
	}

	entries := ExtractSchedule(text, s.yard.Vessels())
	s.Replace(ctx, entries)
	observability.ScheduleExtractions.WithLabelValues(lo.Ternary(len(entries) > 0, "true", "false")).Inc()

	if len(entries) == 0 {
		log.Info().Str("evt.name", "schedule.no_match").Msg("no vessel matches found in schedule text")
	} else {
		s.mu.Lock()
		s.selection = lo.Union(s.selection, lo.Map(entries, func(e *model.ScheduleData, _ int) string {
			return e.VesselName
		}))
		selection := append([]string{}, s.selection...)
		s.mu.Unlock()
		saveState(ctx, s.state, repo.StateKeySelection, selection)
	}

	sel := s.Selection()
	return &model.ScheduleParseResult{
		Schedule:    entries,
		Selection:   sel.Selected,
		Highlighted: sel.Highlighted,
	}, nil
}

// ExtractFile reads the text of a schedule document and caches it. Read
// failures are reported in the result and leave the schedule untouched. When
// parse is set the text is parsed right away.
func (s *Schedule) ExtractFile(ctx context.Context, fileName, contentType string, content []byte, parse bool) (*model.ScheduleFileResult, error) {
	text, err := s.extractor.ExtractText(fileName, contentType, content)
	if err != nil {
		log.Warn().
			Str("evt.name", "schedule.extract_failed").
			Str("file", fileName).
			Err(err).
			Msg("failed to read schedule document")
		return &model.ScheduleFileResult{Error: "Error reading file: " + err.Error()}, nil
	}
	s.SetText(ctx, text)
	s.archive.ArchiveAsync(RealmSchedules, "", fileName, content)

	result := &model.ScheduleFileResult{Text: text}
	if parse {
		parsed, err := s.Parse(ctx, text)
		if err != nil {
			return nil, err
		}
		result.Parsed = parsed
	}
	return result, nil
}

// Selection reports the selected vessels. Displayed is the part of the
// selection present in the yard, sorted; Highlighted is capped at the
// highlight limit.
func (s *Schedule) Selection() *model.VesselSelection {
	s.mu.RLock()
	selected := append([]string{}, s.selection...)
	s.mu.RUnlock()

	known := s.yard.Vessels()
	displayed := lo.Intersect(selected, known)
	sort.Strings(displayed)

	highlighted := selected
	if s.highlightLimit >= 0 && len(highlighted) > s.highlightLimit {
		highlighted = highlighted[:s.highlightLimit]
	}
	return &model.VesselSelection{
		Selected:    selected,
		Displayed:   displayed,
		Highlighted: append([]string{}, highlighted...),
	}
}

func (s *Schedule) SetSelection(ctx context.Context, vessels []string) *model.VesselSelection {
	vessels = lo.Uniq(lo.FilterMap(vessels, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	}))
	s.mu.Lock()
	s.selection = vessels
	s.mu.Unlock()
	saveState(ctx, s.state, repo.StateKeySelection, vessels)
	return s.Selection()
}

// VesselList lists known vessels narrowed by filter against the schedule table.
func (s *Schedule) VesselList(filter model.VesselListFilter) []*model.VesselEntry {
	scheduled := lo.Associate(s.Entries(), func(e *model.ScheduleData) (string, struct{}) {
		return e.VesselName, struct{}{}
	})
	selected := lo.Associate(s.Selection().Selected, func(v string) (string, struct{}) {
		return v, struct{}{}
	})

	out := make([]*model.VesselEntry, 0)
	for _, v := range s.yard.Vessels() {
		_, isScheduled := scheduled[v]
		if (filter == model.VesselListSchedule && !isScheduled) || (filter == model.VesselListOther && isScheduled) {
			continue
		}
		_, isSelected := selected[v]
		out = append(out, &model.VesselEntry{Name: v, Scheduled: isScheduled, Selected: isSelected})
	}
	return out
}

func (s *Schedule) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = []*model.ScheduleData{}
	s.rawText = ""
	s.selection = []string{}
	s.mu.Unlock()
	return s.state.Delete(ctx, repo.StateKeySchedule, repo.StateKeyScheduleText, repo.StateKeySelection)
}
