package service

import "fmt"

// CEFRLevel is one band of the proficiency ladder.
type CEFRLevel struct {
	Level     string // e.g. "C1"
	Label     string // e.g. "Advanced"
	IELTSBand string // indicative IELTS equivalent, e.g. "7.0-8.0"
	MinScore  int
	MaxScore  int
}

// Range renders the closed numeric score range, e.g. "71-85".
func (l CEFRLevel) Range() string {
	return fmt.Sprintf("%d-%d", l.MinScore, l.MaxScore)
}

// cefrLadder is evaluated top-down; the first band whose MinScore the score
// reaches wins.
var cefrLadder = []CEFRLevel{
	{Level: "C2", Label: "Proficient", IELTSBand: "8.5-9.0", MinScore: 86, MaxScore: 100},
	{Level: "C1", Label: "Advanced", IELTSBand: "7.0-8.0", MinScore: 71, MaxScore: 85},
	{Level: "B2", Label: "Upper Intermediate", IELTSBand: "5.5-6.5", MinScore: 51, MaxScore: 70},
	{Level: "B1", Label: "Intermediate", IELTSBand: "4.0-5.0", MinScore: 41, MaxScore: 50},
	{Level: "A2", Label: "Elementary", IELTSBand: "3.0-3.5", MinScore: 21, MaxScore: 40},
	{Level: "A1", Label: "Beginner", IELTSBand: "2.0-2.5", MinScore: 11, MaxScore: 20},
	{Level: "A0", Label: "Novice", IELTSBand: "0-1.5", MinScore: 0, MaxScore: 10},
}

// CEFRService maps 0-100 scores to proficiency bands. Pure and table-driven.
type CEFRService interface {
	Classify(score int) CEFRLevel
	LevelByName(level string) (CEFRLevel, bool)
}

type cefrService struct{}

func NewCEFRService() CEFRService {
	return &cefrService{}
}

func (s *cefrService) Classify(score int) CEFRLevel {
	for _, band := range cefrLadder {
		if score >= band.MinScore {
			return band
		}
	}
	return cefrLadder[len(cefrLadder)-1]
}

// LevelByName is the inverse lookup used for certificate and report rendering.
func (s *cefrService) LevelByName(level string) (CEFRLevel, bool) {
	for _, band := range cefrLadder {
		if band.Level == level {
			return band, true
		}
	}
	return CEFRLevel{}, false
}
