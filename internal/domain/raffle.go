package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skinrally/backend/internal/client"
	"github.com/skinrally/backend/internal/domain/notification/event"
	"github.com/skinrally/backend/internal/entity"
	"github.com/skinrally/backend/internal/model"
	"github.com/skinrally/backend/internal/repository"
	"github.com/skinrally/backend/pkg/crypto"
	"github.com/skinrally/backend/pkg/enum"
	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	// maxTicketsPerPurchase caps a single purchase regardless of how many
	// tickets are left.
	maxTicketsPerPurchase = 100

	// drawCountdown is the delay between the last ticket sale and the
	// earliest allowed draw.
	drawCountdown = 60 * time.Second

	defaultListLimit = 20
	maxListLimit     = 50
)

// platformFeeRate is the fixed share retained from each sale before
// crediting the creator.
var platformFeeRate = decimal.New(5, -2)

// raffleTicketTiers are the only allowed raffle sizes.
var raffleTicketTiers = []int{50, 100, 200, 500}

var maxTicketPrice = decimal.NewFromInt(100000)

type RaffleDomain interface {
	Create(context.Context, *model.CreateRaffleRequest) (*model.CreateRaffleResponse, error)
	Get(context.Context, *model.GetRaffleRequest) (*model.GetRaffleResponse, error)
	GetList(context.Context, *model.GetRafflesRequest) (*model.GetRafflesResponse, error)
	BuyTickets(context.Context, *model.BuyRaffleTicketsRequest) (*model.BuyRaffleTicketsResponse, error)
	Draw(context.Context, *model.DrawRaffleRequest) (*model.DrawRaffleResponse, error)
	GetMyEntries(context.Context, *model.GetMyEntriesRequest) (*model.GetMyEntriesResponse, error)
}

type raffleDomain struct {
	raffleRepo    repository.RaffleRepository
	entryRepo     repository.RaffleEntryRepository
	userRepo      repository.UserRepository
	balanceTxRepo repository.BalanceTransactionRepository
	notifier      client.Notifier
}

func NewRaffleDomain(
	raffleRepo repository.RaffleRepository,
	entryRepo repository.RaffleEntryRepository,
	userRepo repository.UserRepository,
	balanceTxRepo repository.BalanceTransactionRepository,
	notifier client.Notifier,
) *raffleDomain {
	return &raffleDomain{
		raffleRepo:    raffleRepo,
		entryRepo:     entryRepo,
		userRepo:      userRepo,
		balanceTxRepo: balanceTxRepo,
		notifier:      notifier,
	}
}

func (d *raffleDomain) Create(
	ctx context.Context, req *model.CreateRaffleRequest,
) (*model.CreateRaffleResponse, error) {
	if req.ItemName == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an item name")
	}

	validTier := false
	for _, tier := range raffleTicketTiers {
		if req.TotalTickets == tier {
			validTier = true
			break
		}
	}

	if !validTier {
		return nil, errorx.New(errorx.BadRequest,
			"Total tickets must be one of %v", raffleTicketTiers)
	}

	if !req.TicketPrice.IsPositive() || req.TicketPrice.GreaterThan(maxTicketPrice) {
		return nil, errorx.New(errorx.BadRequest,
			"Ticket price must be positive and at most %s", maxTicketPrice)
	}

	if !req.EndDate.After(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "End date must be in the future")
	}

	creator, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	raffle := &entity.Raffle{
		Base:         entity.Base{ID: uuid.NewString()},
		CreatorID:    creator.ID,
		ItemName:     req.ItemName,
		ItemImageURL: req.ItemImageURL,
		ItemRarity:   req.ItemRarity,
		ItemExterior: req.ItemExterior,
		ItemFloat:    req.ItemFloat,
		IsStatTrak:   req.IsStatTrak,
		IsSouvenir:   req.IsSouvenir,
		TotalTickets: req.TotalTickets,
		TicketPrice:  req.TicketPrice,
		TotalValue:   req.TicketPrice.Mul(decimal.NewFromInt(int64(req.TotalTickets))),
		SoldTickets:  0,
		Status:       entity.RaffleActive,
		EndDate:      req.EndDate,
	}

	if err := d.raffleRepo.Create(ctx, raffle); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRaffleResponse{
		Raffle: model.ConvertRaffle(raffle, model.ConvertShortUser(creator)),
	}, nil
}

func (d *raffleDomain) Get(
	ctx context.Context, req *model.GetRaffleRequest,
) (*model.GetRaffleResponse, error) {
	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	// A fully-sold raffle still marked active means the post-purchase
	// transition did not apply; retry it on this read path.
	if raffle.Status == entity.RaffleActive && raffle.SoldTickets >= raffle.TotalTickets {
		d.triggerCompletion(ctx, raffle.ID)
		if raffle, err = d.raffleRepo.GetByID(ctx, req.RaffleID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get raffle after transition: %v", err)
			return nil, errorx.Unknown
		}
	}

	entries, err := d.entryRepo.GetByRaffleID(ctx, raffle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entries: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.RaffleEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, model.ConvertRaffleEntry(&entries[i], model.ShortUser{}))
	}

	creator, err := d.userRepo.GetByID(ctx, raffle.CreatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle creator: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRaffleResponse{
		Raffle:  model.ConvertRaffle(raffle, model.ConvertShortUser(creator)),
		Entries: clientEntries,
	}, nil
}

func (d *raffleDomain) GetList(
	ctx context.Context, req *model.GetRafflesRequest,
) (*model.GetRafflesResponse, error) {
	filter := repository.GetListRaffleFilter{
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.RaffleStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}

	if filter.Limit > maxListLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", maxListLimit)
	}

	raffles, err := d.raffleRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffles: %v", err)
		return nil, errorx.Unknown
	}

	clientRaffles := []model.Raffle{}
	for i := range raffles {
		clientRaffles = append(clientRaffles, model.ConvertRaffle(&raffles[i], model.ShortUser{}))
	}

	return &model.GetRafflesResponse{Raffles: clientRaffles}, nil
}

func (d *raffleDomain) BuyTickets(
	ctx context.Context, req *model.BuyRaffleTicketsRequest,
) (*model.BuyRaffleTicketsResponse, error) {
	if req.TicketCount < 1 || req.TicketCount > maxTicketsPerPurchase {
		return nil, errorx.New(errorx.BadRequest,
			"Number of tickets must be between 1 and %d", maxTicketsPerPurchase)
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Status != entity.RaffleActive {
		return nil, errorx.New(errorx.Unavailable, "The raffle is not open for purchases")
	}

	if !time.Now().Before(raffle.EndDate) {
		return nil, errorx.New(errorx.Unavailable, "The raffle has expired")
	}

	if req.UserID == raffle.CreatorID {
		return nil, errorx.New(errorx.PermissionDenied,
			"The creator cannot buy tickets of their own raffle")
	}

	if remaining := raffle.TotalTickets - raffle.SoldTickets; req.TicketCount > remaining {
		return nil, errorx.New(errorx.Unavailable, "Only %d tickets left", remaining)
	}

	buyer, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get buyer: %v", err)
		return nil, errorx.Unknown
	}

	amount := raffle.TicketPrice.Mul(decimal.NewFromInt(int64(req.TicketCount)))
	if buyer.Balance.LessThan(amount) {
		return nil, errorx.New(errorx.Unavailable, "Insufficient balance")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Reserve the capacity first. The guarded update serializes concurrent
	// purchases on the raffle row, so the sold-ticket read below cannot see
	// a stale snapshot.
	if err := d.raffleRepo.IncreaseSoldTickets(ctx, raffle.ID, req.TicketCount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Not enough tickets left")
		}

		xcontext.Logger(ctx).Errorf("Cannot reserve tickets: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.entryRepo.GetByRaffleID(ctx, raffle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entries: %v", err)
		return nil, errorx.Unknown
	}

	sold := map[int]bool{}
	for i := range entries {
		for _, number := range entries[i].Tickets {
			sold[number] = true
		}
	}

	tickets, err := allocateTickets(sold, raffle.TotalTickets, req.TicketCount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot allocate tickets of raffle %s: %v", raffle.ID, err)
		return nil, errorx.Unknown
	}

	entry := &entity.RaffleEntry{
		Base:        entity.Base{ID: uuid.NewString()},
		RaffleID:    raffle.ID,
		BuyerID:     buyer.ID,
		Tickets:     tickets,
		TicketCount: req.TicketCount,
		Amount:      amount,
	}

	if err := d.entryRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create raffle entry: %v", err)
		return nil, errorx.Unknown
	}

	// Re-check of the balance under the transaction; the guarded update
	// fails instead of going negative.
	if err := d.userRepo.DecreaseBalance(ctx, buyer.ID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Insufficient balance")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit buyer: %v", err)
		return nil, errorx.Unknown
	}

	creatorShare := amount.Sub(amount.Mul(platformFeeRate))
	if err := d.userRepo.IncreaseBalance(ctx, raffle.CreatorID, creatorShare); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit creator: %v", err)
		return nil, errorx.Unknown
	}

	metadata := structs.Map(model.PurchaseMetadata{
		RaffleID:      raffle.ID,
		ItemName:      raffle.ItemName,
		TicketCount:   req.TicketCount,
		TicketNumbers: tickets,
	})

	debit := &entity.BalanceTransaction{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   buyer.ID,
		Type:     entity.BalanceTicketPurchase,
		Amount:   amount.Neg(),
		RaffleID: sql.NullString{String: raffle.ID, Valid: true},
		Metadata: metadata,
	}

	credit := &entity.BalanceTransaction{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   raffle.CreatorID,
		Type:     entity.BalanceSaleProceeds,
		Amount:   creatorShare,
		RaffleID: sql.NullString{String: raffle.ID, Valid: true},
		Metadata: metadata,
	}

	for _, tx := range []*entity.BalanceTransaction{debit, credit} {
		if err := d.balanceTxRepo.Create(ctx, tx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record balance transaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	// The purchase is committed; the transition to drawing is a separate
	// idempotent step whose failure must not fail the purchase.
	d.triggerCompletion(ctx, raffle.ID)

	return &model.BuyRaffleTicketsResponse{
		Entry: model.ConvertRaffleEntry(entry, model.ConvertShortUser(buyer)),
		Message: fmt.Sprintf("You bought %d tickets of %s for %s",
			req.TicketCount, raffle.ItemName, amount),
	}, nil
}

// triggerCompletion moves a fully-sold raffle to the drawing state and
// starts the draw countdown. Calling it on a raffle that already moved on is
// a no-op.
func (d *raffleDomain) triggerCompletion(ctx context.Context, raffleID string) {
	raffle, err := d.raffleRepo.GetByID(ctx, raffleID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get raffle for the completion check: %v", err)
		return
	}

	if raffle.Status != entity.RaffleActive {
		return
	}

	if raffle.SoldTickets < raffle.TotalTickets {
		return
	}

	drawDate := time.Now().Add(drawCountdown)
	if err := d.raffleRepo.TransitionToDrawing(ctx, raffleID, drawDate); err != nil {
		// A lost race with another trigger is fine; the raffle is drawing.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot start the draw countdown of %s: %v", raffleID, err)
		}

		return
	}

	d.emit(ctx, event.New(
		&event.RaffleSoldOutEvent{
			RaffleID: raffle.ID,
			ItemName: raffle.ItemName,
			DrawDate: drawDate.Format(model.DefaultTimeLayout),
		},
		event.Metadata{To: raffle.CreatorID},
	))
}

func (d *raffleDomain) Draw(
	ctx context.Context, req *model.DrawRaffleRequest,
) (*model.DrawRaffleResponse, error) {
	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Status == entity.RaffleCompleted {
		return nil, errorx.New(errorx.Unavailable, "The raffle was already drawn")
	}

	if raffle.Status != entity.RaffleDrawing {
		return nil, errorx.New(errorx.Unavailable, "The raffle is not ready for a draw")
	}

	if !raffle.DrawDate.Valid || time.Now().Before(raffle.DrawDate.Time) {
		return nil, errorx.New(errorx.Unavailable, "The draw countdown has not elapsed")
	}

	// The full-space draw below is only valid on a 100% sold raffle, where
	// every number has exactly one owner.
	if raffle.SoldTickets != raffle.TotalTickets {
		return nil, errorx.New(errorx.Unavailable, "The raffle is not fully sold")
	}

	entries, err := d.entryRepo.GetByRaffleID(ctx, raffle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entries: %v", err)
		return nil, errorx.Unknown
	}

	winnerTicket := crypto.RandRange(1, raffle.TotalTickets+1)

	var winner *entity.RaffleEntry
	for i := range entries {
		for _, number := range entries[i].Tickets {
			if number == winnerTicket {
				winner = &entries[i]
				break
			}
		}

		if winner != nil {
			break
		}
	}

	if winner == nil {
		// Every number of a fully-sold raffle must have an owner; this is
		// corrupted data, not a rejection.
		xcontext.Logger(ctx).Errorf(
			"No entry owns ticket %d of fully-sold raffle %s (%d entries, %d tickets sold)",
			winnerTicket, raffle.ID, len(entries), raffle.SoldTickets)
		return nil, errorx.New(errorx.Internal, "Raffle data is corrupted")
	}

	completedAt := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.raffleRepo.Complete(ctx, raffle.ID, winner.BuyerID, winnerTicket, completedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "The raffle was already drawn")
		}

		xcontext.Logger(ctx).Errorf("Cannot complete raffle: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.entryRepo.SetWinner(ctx, winner.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot flag the winning entry: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	d.notifyDrawResult(ctx, raffle, winner, winnerTicket, entries)

	raffle.Status = entity.RaffleCompleted
	raffle.WinnerID = sql.NullString{String: winner.BuyerID, Valid: true}
	raffle.WinnerTicket = sql.NullInt64{Int64: int64(winnerTicket), Valid: true}
	raffle.CompletedAt = sql.NullTime{Time: completedAt, Valid: true}

	return &model.DrawRaffleResponse{
		WinnerID:     winner.BuyerID,
		WinnerTicket: winnerTicket,
		Raffle:       model.ConvertRaffle(raffle, model.ShortUser{}),
	}, nil
}

// notifyDrawResult fans the draw result out to every distinct participant
// and to the creator. Delivery is best-effort and never fails the draw.
func (d *raffleDomain) notifyDrawResult(
	ctx context.Context,
	raffle *entity.Raffle,
	winner *entity.RaffleEntry,
	winnerTicket int,
	entries []entity.RaffleEntry,
) {
	d.emit(ctx, event.New(
		&event.RaffleWonEvent{
			RaffleID:     raffle.ID,
			ItemName:     raffle.ItemName,
			WinnerTicket: winnerTicket,
		},
		event.Metadata{To: winner.BuyerID},
	))

	notified := map[string]bool{winner.BuyerID: true}
	for i := range entries {
		if notified[entries[i].BuyerID] {
			continue
		}

		notified[entries[i].BuyerID] = true
		d.emit(ctx, event.New(
			&event.RaffleDrawnEvent{
				RaffleID:     raffle.ID,
				ItemName:     raffle.ItemName,
				WinnerID:     winner.BuyerID,
				WinnerTicket: winnerTicket,
			},
			event.Metadata{To: entries[i].BuyerID},
		))
	}

	if !notified[raffle.CreatorID] {
		d.emit(ctx, event.New(
			&event.RaffleDrawnEvent{
				RaffleID:     raffle.ID,
				ItemName:     raffle.ItemName,
				WinnerID:     winner.BuyerID,
				WinnerTicket: winnerTicket,
			},
			event.Metadata{To: raffle.CreatorID},
		))
	}
}

func (d *raffleDomain) emit(ctx context.Context, ev *event.EventRequest) {
	if err := d.notifier.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit %s event: %v", ev.Op, err)
	}
}

func (d *raffleDomain) GetMyEntries(
	ctx context.Context, req *model.GetMyEntriesRequest,
) (*model.GetMyEntriesResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a user id")
	}

	entries, err := d.entryRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.RaffleEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, model.ConvertRaffleEntry(&entries[i], model.ShortUser{}))
	}

	return &model.GetMyEntriesResponse{Entries: clientEntries}, nil
}
