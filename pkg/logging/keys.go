package logging

const (
	// KeyError is the attribute key used for error values.
	KeyError = "err"

	// KeyDal is the attribute key used for the data access layer name.
	KeyDal = "dal"

	// KeySignal is the attribute key used for OS signals.
	KeySignal = "signal"
)
