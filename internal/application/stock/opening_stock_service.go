package stock

import (
	"context"

	"github.com/stockflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// OpeningStockService seeds and lists opening stock lots
type OpeningStockService struct {
	lotRepo stock.StockLotRepository
	logger  *zap.Logger
}

// NewOpeningStockService creates a new OpeningStockService
func NewOpeningStockService(lotRepo stock.StockLotRepository, logger *zap.Logger) *OpeningStockService {
	return &OpeningStockService{lotRepo: lotRepo, logger: logger}
}

// List returns all opening stock lots
func (s *OpeningStockService) List(ctx context.Context) ([]StockLotResponse, error) {
	lots, err := s.lotRepo.FindBySource(ctx, stock.LotSourceOpening)
	if err != nil {
		return nil, err
	}
	responses := make([]StockLotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, toStockLotResponse(&lots[i]))
	}
	return responses, nil
}

// Create seeds one opening stock lot. Opening lots take part in FIFO
// allocation like any purchased lot; the reference stands in for a PO number.
func (s *OpeningStockService) Create(ctx context.Context, req CreateOpeningStockRequest) (*StockLotResponse, error) {
	lot := stock.NewStockLot(req.PartNumber, req.MakeCompany, req.Unit,
		req.UnitPrice, req.Quantity, req.EntryDate, req.Reference, stock.LotSourceOpening)
	if err := lot.Validate(); err != nil {
		return nil, err
	}
	if err := s.lotRepo.Save(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("Opening stock seeded",
		zap.String("part_number", lot.PartNumber),
		zap.Int64("quantity", lot.Quantity),
	)

	resp := toStockLotResponse(lot)
	return &resp, nil
}
