package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"moonbot/logger"
	"moonbot/lunar"
)

// State remembers the last Moon phase announced to the chat, so a restart does not repeat it
type State struct {
	path string
}

// Init() creates the state file when it does not exist yet. An empty file means nothing was announced
func (s *State) Init(stateFilePath string) {
	s.path = stateFilePath
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.path, nil, 0644); err != nil {
			logger.Get().Error().Err(err).Str("path", s.path).Msg("can't write to state file")
			return
		}
		logger.Get().Info().Str("path", s.path).Msg("state file initialized")
	}
}

// Set() writes the announced phase to the state file
func (s *State) Set(p lunar.Phase) {
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(int(p))), 0644); err != nil {
		logger.Get().Error().Err(err).Str("path", s.path).Msg("can't write to state file")
		return
	}
	logger.Get().Info().Stringer("phase", p).Msg("state file updated")
}

// Last() returns the last announced phase, false when none was recorded
func (s *State) Last() (lunar.Phase, bool) {
	dat, err := os.ReadFile(s.path)
	if err != nil {
		logger.Get().Error().Err(err).Str("path", s.path).Msg("can't read from state file")
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(dat)))
	if err != nil || n < int(lunar.NewMoon) || n > int(lunar.WaningCrescent) {
		return 0, false
	}
	return lunar.Phase(n), true
}
