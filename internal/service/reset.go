package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/repo"
)

// Reset wipes every piece of local state and restores default block configs.
// Cloud records are left alone.
type Reset struct {
	state    StateStore
	yard     *Yard
	schedule *Schedule
	requests *Request
	blocks   *BlockConfig
}

func NewReset(state StateStore, yard *Yard, schedule *Schedule, requests *Request, blocks *BlockConfig) *Reset {
	return &Reset{state: state, yard: yard, schedule: schedule, requests: requests, blocks: blocks}
}

func (s *Reset) ClearAll(ctx context.Context) error {
	if err := s.yard.Clear(ctx); err != nil {
		return err
	}
	if err := s.schedule.Clear(ctx); err != nil {
		return err
	}
	if err := s.requests.Clear(ctx); err != nil {
		return err
	}
	s.blocks.Reset()
	if err := s.state.Delete(ctx, repo.AllStateKeys...); err != nil {
		return err
	}
	log.Info().Str("evt.name", "state.cleared").Msg("all local yard state cleared")
	return nil
}
