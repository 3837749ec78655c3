package category

// DefaultNames is the template catalogue seeded into every new account.
var DefaultNames = []string{
	"Groceries", "Restaurants / Dining Out", "Coffee / Snacks", "Takeout / Delivery", "Alcohol / Bars",
	"Fuel / Gas", "Public Transport", "Taxi / Ride-share", "Vehicle Maintenance / Repairs", "Parking & Tolls", "Vehicle Insurance",
	"Rent / Mortgage", "Utilities", "Internet & Cable", "Home Maintenance / Repairs", "Property Taxes", "Home Insurance",
	"Medical / Doctor Visits", "Dental", "Health Insurance", "Medications / Pharmacy", "Gym / Fitness Membership", "Sports / Outdoor Activities",
	"Tuition / School Fees", "Books / Supplies", "Online Courses / Subscriptions",
	"Movies / Streaming Services", "Concerts / Events", "Hobbies", "Games / Apps",
	"Clothing / Accessories", "Personal Care / Cosmetics", "Haircuts / Salon", "Laundry / Dry Cleaning",
	"Loan Payments", "Credit Card Payments", "Bank Fees", "Investments", "Insurance",
	"Mobile Phone", "Gadgets / Electronics", "Apps / Software", "Subscriptions",
	"Flights / Trains / Buses", "Accommodation / Hotels", "Travel Insurance", "Travel Food & Leisure",
	"Childcare / Babysitter", "School Fees / Activities", "Toys / Supplies",
	"Gifts", "Charity / Donations",
	"Pet Care", "Unexpected Expenses / Emergencies", "Taxes",
}
