package event

// RaffleSoldOutEvent is sent to the creator when the last ticket is sold and
// the countdown to the draw begins.
type RaffleSoldOutEvent struct {
	RaffleID string `json:"raffle_id"`
	ItemName string `json:"item_name"`
	DrawDate string `json:"draw_date"`
}

func (RaffleSoldOutEvent) Op() string {
	return "raffle_sold_out"
}

// RaffleWonEvent is sent to the winner of a completed raffle.
type RaffleWonEvent struct {
	RaffleID     string `json:"raffle_id"`
	ItemName     string `json:"item_name"`
	WinnerTicket int    `json:"winner_ticket"`
}

func (RaffleWonEvent) Op() string {
	return "raffle_won"
}

// RaffleDrawnEvent is sent to every other participant of a completed raffle.
type RaffleDrawnEvent struct {
	RaffleID     string `json:"raffle_id"`
	ItemName     string `json:"item_name"`
	WinnerID     string `json:"winner_id"`
	WinnerTicket int    `json:"winner_ticket"`
}

func (RaffleDrawnEvent) Op() string {
	return "raffle_drawn"
}
