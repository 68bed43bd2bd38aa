package game

import "sort"

// FinalStanding is one player's placement in calculateFinalResultsLocked's output.
type FinalStanding struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
}

// calculateFinalResultsLocked ranks every seated player by score descending,
// breaking ties by join order so results are deterministic. Callers must
// hold r.mu.
func (r *RoomEngine) calculateFinalResultsLocked() []FinalStanding {
	standings := make([]FinalStanding, 0, len(r.players))
	for _, id := range r.playerOrder {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		standings = append(standings, FinalStanding{PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}
