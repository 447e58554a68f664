package service

import (
	"math"

	"github.com/mattmelloy/simplecalorie/internal/model"
)

// KcalToKJ is the conversion factor from kilocalories to kilojoules.
const KcalToKJ = 4.184

// ToDisplay converts a stored kcal value to the display unit, rounded
// to the nearest integer. Storage is always kcal; kJ exists only at
// this boundary, so converting kcal->kJ->kcal is not expected to
// round-trip exactly.
func ToDisplay(kcal float64, unit model.Unit) int {
	if unit == model.UnitKJ {
		return int(math.Round(kcal * KcalToKJ))
	}
	return int(math.Round(kcal))
}
