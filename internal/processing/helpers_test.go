package processing

import (
	"time"

	"visastay/internal/app"
)

// testLeg builds a flight leg whose actual times all equal at (UTC)
func testLeg(airline, flight, from, to, at string) app.FlightLeg {
	ts, err := time.Parse("2006-01-02 15:04", at)
	if err != nil {
		panic(err)
	}
	return app.FlightLeg{
		Date:          ts.Format("2006-01-02"),
		Airline:       airline,
		Flight:        flight,
		From:          from,
		To:            to,
		GateDeparture: &ts,
		TakeOff:       &ts,
		Landing:       &ts,
		GateArrival:   &ts,
	}
}
