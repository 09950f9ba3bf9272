package conversation

import (
	"fmt"
	"math"
	"strings"

	"github.com/conversational-intent-router/internal/scoring"
)

// compareTieBand is the score difference under which neither mode is
// reported as the winner.
const compareTieBand = 0.001

// handleCommand intercepts developer commands before the state machine.
// Commands never touch last_user_message, phase, candidates, or ambiguity
// fields; /switch_mode only flips the mode toggle.
func (d *Disambiguator) handleCommand(command string, st *State) TurnResult {
	parts := strings.Fields(strings.TrimSpace(command))
	if len(parts) == 0 {
		return unknownCommand()
	}

	switch strings.ToLower(parts[0]) {
	case "/switch_mode":
		return d.switchMode(parts, st)
	case "/compare_modes":
		return d.compareModes(st)
	default:
		return unknownCommand()
	}
}

func (d *Disambiguator) switchMode(parts []string, st *State) TurnResult {
	if len(parts) < 2 {
		return TurnResult{
			Status:        StatusError,
			MessageToUser: "Usage: /switch_mode [json|toon]",
		}
	}

	mode := Mode(strings.ToLower(parts[1]))
	if !mode.Valid() {
		return TurnResult{
			Status:        StatusError,
			MessageToUser: "Invalid mode. Use 'json' or 'toon'.",
		}
	}

	st.Mode = mode
	return TurnResult{
		Status:        StatusAck,
		MessageToUser: fmt.Sprintf("Developer: switched to %s mode.", strings.ToUpper(string(mode))),
	}
}

// compareModes reclassifies the last user message under both catalog modes
// at the primary profile and reports agreement and the higher-scoring mode.
// With no new message in between, repeated calls return identical reports.
func (d *Disambiguator) compareModes(st *State) TurnResult {
	if st.LastUserMessage == "" {
		return TurnResult{
			Status:        StatusError,
			MessageToUser: "No recent user message to compare.",
		}
	}

	jsonReport := d.modeReport(st.LastUserMessage, ModeJSON)
	toonReport := d.modeReport(st.LastUserMessage, ModeTOON)

	agreement := "NO"
	if jsonReport.TopIntent == toonReport.TopIntent {
		agreement = "YES"
	}

	winner := "TOON"
	if jsonReport.Score > toonReport.Score {
		winner = "JSON"
	}
	diff := math.Abs(jsonReport.Score - toonReport.Score)
	if diff < compareTieBand {
		winner = "TIE"
	}

	analysis := fmt.Sprintf("Agreement: %s. Higher Score: %s. Diff: %.4f", agreement, winner, diff)

	return TurnResult{
		Status:     StatusDeveloperCompare,
		JSONResult: &jsonReport,
		TOONResult: &toonReport,
		Analysis:   analysis,
		MessageToUser: fmt.Sprintf("COMPARE REPORT:\nJSON: %s (%.3f)\nTOON: %s (%.3f)\nAnalysis: %s",
			jsonReport.TopIntent, jsonReport.Score,
			toonReport.TopIntent, toonReport.Score,
			analysis),
	}
}

// modeReport classifies one message against one catalog mode at the primary
// profile.
func (d *Disambiguator) modeReport(message string, mode Mode) ModeReport {
	candidates := d.classify(message, mode, scoring.Primary)

	report := ModeReport{ScoresRaw: make([]ScoreEntry, 0, len(candidates))}
	for _, cand := range candidates {
		report.ScoresRaw = append(report.ScoresRaw, ScoreEntry{ID: cand.ID, Score: cand.Confidence})
	}
	if len(candidates) > 0 {
		report.TopIntent = candidates[0].ID
		report.Score = candidates[0].Confidence
	}
	return report
}

func unknownCommand() TurnResult {
	return TurnResult{
		Status:        StatusError,
		MessageToUser: "Unknown developer command.",
	}
}
