package endpoints

import (
	"context"
)

type Endpoints struct {
	FareEndpoint
	SweepEndpoint
}

// MakeEndpoints builds every endpoint. Sweeps started over HTTP outlive the
// request, so they run under base.
func MakeEndpoints(base context.Context, fares FareService, sweeps SweepStarter) Endpoints {
	return Endpoints{
		FareEndpoint:  MakeFareEndpoint(fares),
		SweepEndpoint: MakeSweepEndpoint(base, sweeps),
	}
}
