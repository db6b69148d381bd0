package domain

// rentalTransitions is the allowed rental status graph. All writers go
// through CanTransitionRental + NextStatusOnStopCompletion rather than
// mutating status inline, so the rules live in one place.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusScheduled: {RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled},
	RentalStatusActive:    {RentalStatusCompleted, RentalStatusCancelled},
	// Terminal states.
	RentalStatusCompleted: {},
	RentalStatusCancelled: {},
}

func CanTransitionRental(from, to RentalStatus) bool {
	if from == to {
		return true
	}
	for _, s := range rentalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatusOnStopCompletion maps a completed stop onto the rental status it
// produces. The second return value reports whether a transition applies: a
// DELIVERY stop only advances a rental still in SCHEDULED, and a rental that
// was already moved on by other means is left untouched.
func NextStatusOnStopCompletion(current RentalStatus, stop StopType) (RentalStatus, bool) {
	switch stop {
	case StopTypeDelivery:
		if current == RentalStatusScheduled {
			return RentalStatusActive, true
		}
	case StopTypeReturn:
		if current == RentalStatusScheduled || current == RentalStatusActive {
			return RentalStatusCompleted, true
		}
	}
	return current, false
}

// routeTransitions is monotonic: once COMPLETED, a route never moves again.
var routeTransitions = map[RouteStatus][]RouteStatus{
	RouteStatusPlanned:    {RouteStatusInProgress},
	RouteStatusInProgress: {RouteStatusCompleted},
	RouteStatusCompleted:  {},
}

func CanTransitionRoute(from, to RouteStatus) bool {
	for _, s := range routeTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
