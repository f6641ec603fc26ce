package dto

type DueResponse struct {
	BookingID     string `json:"bookingId"`
	RoomNumber    string `json:"roomNumber"`
	CustomerName  string `json:"customerName"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	Status        string `json:"status"`
	DurationType  string `json:"durationType"`
	Units         int    `json:"units"`
	UnitCost      int64  `json:"unitCost"`
	ExpectedCost  int64  `json:"expectedCost"`
	TotalPaid     int64  `json:"totalPaid"`
	Due           int64  `json:"due"`
}

type DueListResponse struct {
	Items []DueResponse `json:"items"`
	Total int64         `json:"total"`
}
