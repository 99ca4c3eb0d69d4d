package rating

// matrixKey pairs a likelihood level with an impact level.
type matrixKey struct {
	likelihood Level
	impact     Level
}

// iso27005 is the likelihood x impact combination table. The table is
// asymmetric: a Very High likelihood with Very Low impact yields Medium,
// while the reverse pair yields Low.
var iso27005 = map[matrixKey]Level{
	{VeryHigh, VeryHigh}: VeryHigh,
	{VeryHigh, High}:     VeryHigh,
	{VeryHigh, Medium}:   High,
	{VeryHigh, Low}:      High,
	{VeryHigh, VeryLow}:  Medium,
	{High, VeryHigh}:     VeryHigh,
	{High, High}:         High,
	{High, Medium}:       High,
	{High, Low}:          Medium,
	{High, VeryLow}:      Low,
	{Medium, VeryHigh}:   High,
	{Medium, High}:       High,
	{Medium, Medium}:     Medium,
	{Medium, Low}:        Low,
	{Medium, VeryLow}:    Low,
	{Low, VeryHigh}:      Medium,
	{Low, High}:          Medium,
	{Low, Medium}:        Low,
	{Low, Low}:           Low,
	{Low, VeryLow}:       VeryLow,
	{VeryLow, VeryHigh}:  Low,
	{VeryLow, High}:      Low,
	{VeryLow, Medium}:    Low,
	{VeryLow, Low}:       VeryLow,
	{VeryLow, VeryLow}:   VeryLow,
}

// Combine maps a likelihood and impact level to a risk level using the
// ISO 27005 risk matrix. Either argument being Unrated yields Unrated.
func Combine(likelihood, impact Level) Level {
	if !likelihood.Valid() || !impact.Valid() {
		return Unrated
	}
	return iso27005[matrixKey{likelihood, impact}]
}
