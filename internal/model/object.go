package model

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

type Raffle struct {
	ID      string    `json:"id"`
	Creator ShortUser `json:"creator"`

	ItemName     string  `json:"item_name"`
	ItemImageURL string  `json:"item_image_url,omitempty"`
	ItemRarity   string  `json:"item_rarity,omitempty"`
	ItemExterior string  `json:"item_exterior,omitempty"`
	ItemFloat    float64 `json:"item_float,omitempty"`
	IsStatTrak   bool    `json:"is_stattrak,omitempty"`
	IsSouvenir   bool    `json:"is_souvenir,omitempty"`

	TotalTickets int    `json:"total_tickets"`
	TicketPrice  string `json:"ticket_price"`
	TotalValue   string `json:"total_value"`
	SoldTickets  int    `json:"sold_tickets"`

	Status       string `json:"status"`
	EndDate      string `json:"end_date"`
	DrawDate     string `json:"draw_date,omitempty"`
	WinnerID     string `json:"winner_id,omitempty"`
	WinnerTicket int    `json:"winner_ticket,omitempty"`
	CompletedAt  string `json:"completed_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type RaffleEntry struct {
	ID          string    `json:"id"`
	RaffleID    string    `json:"raffle_id"`
	Buyer       ShortUser `json:"buyer"`
	Tickets     []int     `json:"tickets"`
	TicketCount int       `json:"ticket_count"`
	Amount      string    `json:"amount"`
	IsWinner    bool      `json:"is_winner"`
	CreatedAt   string    `json:"created_at"`
}

type BalanceTransaction struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Amount    string         `json:"amount"`
	RaffleID  string         `json:"raffle_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// PurchaseMetadata is packed into the audit row of a ticket purchase.
type PurchaseMetadata struct {
	RaffleID      string `structs:"raffle_id" mapstructure:"raffle_id"`
	ItemName      string `structs:"item_name" mapstructure:"item_name"`
	TicketCount   int    `structs:"ticket_count" mapstructure:"ticket_count"`
	TicketNumbers []int  `structs:"ticket_numbers" mapstructure:"ticket_numbers"`
}

// DepositMetadata is packed into the audit row of a mock gateway deposit.
type DepositMetadata struct {
	Gateway   string `structs:"gateway" mapstructure:"gateway"`
	Reference string `structs:"reference" mapstructure:"reference"`
}
