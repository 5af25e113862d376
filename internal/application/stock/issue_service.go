package stock

import (
	"context"
	"time"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// IssueService handles stock issuance: availability quotes, the FIFO commit
// path and the issue history
type IssueService struct {
	scope          TransactionScope
	issueRepo      stock.IssueRepository
	lotRepo        stock.StockLotRepository
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	logger         *zap.Logger
}

// NewIssueService creates a new IssueService
func NewIssueService(
	scope TransactionScope,
	issueRepo stock.IssueRepository,
	lotRepo stock.StockLotRepository,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		scope:     scope,
		issueRepo: issueRepo,
		lotRepo:   lotRepo,
		logger:    logger,
	}
}

// SetIdempotencyStore enables dedup of double submits on the commit path
func (s *IssueService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	s.idempotencyTTL = ttl
}

// GetAvailable quotes the stock on hand for one part number
func (s *IssueService) GetAvailable(ctx context.Context, partNumber string) (*AvailableStockResponse, error) {
	lots, err := s.lotRepo.FindByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	quote := stock.QuoteAvailable(lots, partNumber)
	return &AvailableStockResponse{
		PartNumber: quote.PartNumber,
		Quantity:   quote.Quantity,
		Value:      quote.Value,
		Unit:       quote.Unit,
	}, nil
}

// List returns all issue records, newest first
func (s *IssueService) List(ctx context.Context) ([]IssueRecordResponse, error) {
	records, err := s.issueRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]IssueRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toIssueRecordResponse(&records[i]))
	}
	return responses, nil
}

// CreateIssue validates and commits an issuance inside one transaction.
// The lot snapshot is re-read under the transaction, so a quote the client
// obtained earlier may no longer hold; when the request carries the quoted
// availability and the fresh snapshot falls short, the caller gets
// STALE_QUOTE instead of a plain INSUFFICIENT_STOCK.
func (s *IssueService) CreateIssue(ctx context.Context, req CreateIssueRequest, idempotencyKey string) (*IssueRecordResponse, error) {
	if idempotencyKey != "" && s.idempotency != nil {
		seen, err := s.idempotency.IsProcessed(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if seen {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This issuance was already submitted")
		}
	}

	var response IssueRecordResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lots, err := repos.LotRepo().FindByPartNumber(ctx, req.PartNumber)
		if err != nil {
			return err
		}

		available := stock.TotalAvailable(lots, req.PartNumber)
		if available < req.TotalUnits && req.QuotedAvailable != nil && *req.QuotedAvailable >= req.TotalUnits {
			return stock.NewStaleQuoteError(available, req.TotalUnits)
		}

		result, err := stock.Allocate(toAllocationRequest(req), lots, req.DateIssued)
		if err != nil {
			return err
		}

		if err := repos.LotRepo().ReplaceForPart(ctx, req.PartNumber, result.RemainingLots); err != nil {
			return err
		}
		if err := repos.IssueRepo().Save(ctx, result.Issue); err != nil {
			return err
		}
		if err := repos.PurchaseEntryRepo().MarkIssuedByPONumbers(ctx, consumedPONumbers(result.Consumptions)); err != nil {
			return err
		}

		response = toIssueRecordResponse(result.Issue)
		response.Consumptions = toConsumptionResponses(result.Consumptions)
		totalCost := result.TotalCost
		response.TotalCost = &totalCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Marked only after the commit so a failed transaction stays retryable.
	if idempotencyKey != "" && s.idempotency != nil {
		if _, err := s.idempotency.MarkProcessed(ctx, idempotencyKey, s.idempotencyTTL); err != nil {
			s.logger.Warn("Failed to record idempotency key",
				zap.String("key", idempotencyKey), zap.Error(err))
		}
	}

	s.logger.Info("Stock issued",
		zap.String("part_number", req.PartNumber),
		zap.Int64("quantity", req.TotalUnits),
		zap.String("po_number", response.PONumber),
		zap.Int("lots_consumed", len(response.Consumptions)),
	)

	return &response, nil
}

func toAllocationRequest(req CreateIssueRequest) stock.AllocationRequest {
	projects := make([]stock.ProjectSplit, 0, len(req.Projects))
	for _, p := range req.Projects {
		projects = append(projects, stock.ProjectSplit{
			ProjectName: p.ProjectName,
			Quantity:    p.Quantity,
		})
	}
	return stock.AllocationRequest{
		PartNumber: req.PartNumber,
		TotalUnits: req.TotalUnits,
		Projects:   projects,
	}
}

func toConsumptionResponses(consumptions []stock.LotConsumption) []LotConsumptionResponse {
	responses := make([]LotConsumptionResponse, 0, len(consumptions))
	for _, c := range consumptions {
		responses = append(responses, LotConsumptionResponse{
			LotID:         c.LotID,
			PONumber:      c.PONumber,
			EntryDate:     c.EntryDate,
			Quantity:      c.Quantity,
			UnitPrice:     c.UnitPrice,
			FullyConsumed: c.FullyConsumed,
		})
	}
	return responses
}

// consumedPONumbers returns the distinct PO numbers drawn against, in
// consumption order
func consumedPONumbers(consumptions []stock.LotConsumption) []string {
	seen := make(map[string]struct{}, len(consumptions))
	numbers := make([]string, 0, len(consumptions))
	for _, c := range consumptions {
		if c.PONumber == "" {
			continue
		}
		if _, ok := seen[c.PONumber]; ok {
			continue
		}
		seen[c.PONumber] = struct{}{}
		numbers = append(numbers, c.PONumber)
	}
	return numbers
}
