package scene

// SampleArcs is the default route set: three contractors ship to the hub,
// which forwards to the destination.
func SampleArcs() []Arc {
	const hubLat, hubLng = 39.0121002, -94.19420199999999
	return []Arc{
		{Order: 1, StartLat: 39.904211, StartLng: 116.407395, EndLat: hubLat, EndLng: hubLng, Alt: 0.3, Color: "#06b6d4"},
		{Order: 1, StartLat: 50.4503, StartLng: 30.5245, EndLat: hubLat, EndLng: hubLng, Alt: 0.2, Color: "#06b6d4"},
		{Order: 1, StartLat: 19.432608, StartLng: -99.133208, EndLat: hubLat, EndLng: hubLng, Alt: 0.2, Color: "#06b6d4"},
		{Order: 2, StartLat: hubLat, StartLng: hubLng, EndLat: 42.296026, EndLng: -71.071539, Alt: 0.2, Color: "green"},
	}
}
