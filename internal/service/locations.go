package service

// indianStates is the full list offered by the address form.
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir",
	"Ladakh", "Lakshadweep", "Puducherry",
}

// deliveryStates are the states orders can actually ship to.
var deliveryStates = map[string]bool{
	"Tamil Nadu":     true,
	"Kerala":         true,
	"Karnataka":      true,
	"Telangana":      true,
	"Andhra Pradesh": true,
}

var districtsByState = map[string][]string{
	"Kerala": {
		"Thiruvananthapuram", "Kollam", "Pathanamthitta", "Alappuzha", "Kottayam",
		"Idukki", "Ernakulam", "Thrissur", "Palakkad", "Malappuram", "Kozhikode",
		"Wayanad", "Kannur", "Kasaragod",
	},
	"Tamil Nadu": {
		"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem",
		"Tirunelveli", "Tiruppur", "Vellore", "Erode", "Thoothukudi",
	},
	"Karnataka": {
		"Bengaluru Urban", "Mysuru", "Tumakuru", "Kolar", "Chikkaballapura",
		"Bangalore Rural", "Ramanagara", "Hassan", "Mandya", "Chamrajanagar",
	},
}

// States returns a copy of the state list.
func States() []string {
	return append([]string(nil), indianStates...)
}

// Districts returns the districts of state, or an empty list when unknown.
func Districts(state string) []string {
	return append([]string{}, districtsByState[state]...)
}

// IsDeliveryState reports whether orders may be placed for state.
func IsDeliveryState(state string) bool { return deliveryStates[state] }
