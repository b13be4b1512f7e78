package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/Glorc12/MebelCorpPractic/internal/domain"
)

const (
	msgSelectTypes    = "Пожалуйста, выберите тип продукции и материала"
	msgQuantity       = "Количество единиц должно быть больше 0"
	msgParams         = "Все параметры должны быть больше 0"
	msgLossNegative   = "Процент потерь не может быть отрицательным"
	fieldQuantity     = "quantity"
	fieldParam1       = "param1"
	fieldParam2       = "param2"
	fieldLossPercent  = "loss_percentage"
	fieldProductType  = "product_type_id"
	fieldMaterialType = "material_type_id"
)

// Calculate returns the raw material needed for in.Quantity units:
//
//	base  = quantity * param1 * param2
//	loss  = base * loss% / 100
//	total = base + loss
//
// A non-positive or non-finite quantity/param yields a *domain.ValidationError
// and no result. A NaN loss counts as 0; a negative one is rejected.
func Calculate(in domain.CalculationInput) (domain.CalculationResult, error) {
	if !positive(in.Quantity) {
		return domain.CalculationResult{}, &domain.ValidationError{Field: fieldQuantity, Message: msgQuantity}
	}
	if !positive(in.Param1) {
		return domain.CalculationResult{}, &domain.ValidationError{Field: fieldParam1, Message: msgParams}
	}
	if !positive(in.Param2) {
		return domain.CalculationResult{}, &domain.ValidationError{Field: fieldParam2, Message: msgParams}
	}
	loss := in.LossPercentage
	if math.IsNaN(loss) {
		loss = 0
	}
	if loss < 0 || math.IsInf(loss, 0) {
		return domain.CalculationResult{}, &domain.ValidationError{Field: fieldLossPercent, Message: msgLossNegative}
	}

	base := in.Quantity * in.Param1 * in.Param2
	lossVolume := base * (loss / 100)
	return domain.CalculationResult{
		BaseVolume:       base,
		LossVolume:       lossVolume,
		TotalRawMaterial: base + lossVolume,
	}, nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// CalcForm holds the raw values of the raw material calculator page.
type CalcForm struct {
	ProductTypeID  string
	MaterialTypeID string
	Quantity       string
	Param1         string
	Param2         string
	LossPercentage string
}

// CalcRequest is a parsed CalcForm with display labels resolved.
type CalcRequest struct {
	Input         domain.CalculationInput
	ProductLabel  string
	MaterialLabel string
}

// ParseCalcForm validates the calculator form in the order the page reports
// problems: selection first, then quantity, then the two parameters.
// An empty or unparsable loss counts as 0.
func ParseCalcForm(f CalcForm, snap *Snapshot) (CalcRequest, error) {
	ptID, ok1 := parseID(f.ProductTypeID)
	mtID, ok2 := parseID(f.MaterialTypeID)
	if !ok1 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldProductType, Message: msgSelectTypes}
	}
	if !ok2 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldMaterialType, Message: msgSelectTypes}
	}

	qty, ok := parseNumber(f.Quantity)
	if !ok || qty <= 0 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldQuantity, Message: msgQuantity}
	}
	p1, ok := parseNumber(f.Param1)
	if !ok || p1 <= 0 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldParam1, Message: msgParams}
	}
	p2, ok := parseNumber(f.Param2)
	if !ok || p2 <= 0 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldParam2, Message: msgParams}
	}
	loss, ok := parseNumber(f.LossPercentage)
	if !ok {
		loss = 0
	}
	if loss < 0 {
		return CalcRequest{}, &domain.ValidationError{Field: fieldLossPercent, Message: msgLossNegative}
	}

	return CalcRequest{
		Input: domain.CalculationInput{
			ProductTypeID:  ptID,
			MaterialTypeID: mtID,
			Quantity:       qty,
			Param1:         p1,
			Param2:         p2,
			LossPercentage: loss,
		},
		ProductLabel:  snap.ProductTypeLabel(ptID),
		MaterialLabel: snap.MaterialTypeLabel(mtID),
	}, nil
}

// LossFieldValue is what the loss input shows after a material is picked:
// the material's loss with 2 decimals, or empty when nothing matches.
func LossFieldValue(snap *Snapshot, rawMaterialID string) string {
	id, ok := parseID(rawMaterialID)
	if !ok {
		return ""
	}
	m, ok := snap.MaterialType(id)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(m.Loss(), 'f', 2, 64)
}

// parseNumber accepts a decimal comma as well as a point.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
