package routes

// Fallback names for trains the feed returns without a train_name field.
var trainNames = map[string]string{
	"12001": "Bhopal Shatabdi Express",
	"12002": "Bhopal Shatabdi Express",
	"12101": "Jnaneswari Express",
	"12102": "Jnaneswari Express",
	"12301": "Howrah Rajdhani Express",
	"12302": "Howrah Rajdhani Express",
	"12401": "Magadh Express",
	"12402": "Magadh Express",
	"12555": "Gorakhdham Express",
	"12556": "Gorakhdham Express",
	"12621": "Tamil Nadu Express",
	"12622": "Tamil Nadu Express",
	"12723": "Telangana Express",
	"12724": "Telangana Express",
	"12801": "Puri Express",
	"12802": "Puri Express",
	"12951": "Mumbai Rajdhani Express",
	"12952": "Mumbai Rajdhani Express",
}

func trainName(trainNo, feedName string) string {
	if feedName != "" {
		return feedName
	}
	if name, ok := trainNames[trainNo]; ok {
		return name
	}
	return "Train " + trainNo
}
