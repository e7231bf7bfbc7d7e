package indicator

// Updater is implemented by every indicator state. Update either commits the
// new sample or returns an error and leaves the state untouched.
type Updater[T any] interface {
	Update(sample T) error
	Value() float64
}

var (
	_ Updater[float64]        = (*SMAState)(nil)
	_ Updater[float64]        = (*EMAState)(nil)
	_ Updater[float64]        = (*RSIState)(nil)
	_ Updater[float64]        = (*WMAState)(nil)
	_ Updater[float64]        = (*TRIMAState)(nil)
	_ Updater[float64]        = (*MidPointState)(nil)
	_ Updater[MidPriceSample] = (*MidPriceState)(nil)
	_ Updater[float64]        = (*MACDState)(nil)
	_ Updater[float64]        = (*BBandsState)(nil)
	_ Updater[float64]        = (*DEMAState)(nil)
	_ Updater[float64]        = (*TEMAState)(nil)
	_ Updater[float64]        = (*T3State)(nil)
	_ Updater[float64]        = (*KAMAState)(nil)
	_ Updater[float64]        = (*ROCState)(nil)
)
