package gazetteer

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lon float64
}

// NJTowns maps uppercase New Jersey place names to approximate coordinates.
// This is the default table for market runs in the state; callers covering
// other regions supply their own table via WithTable.
var NJTowns = map[string]Coord{
	"ASBURY PARK":   {40.2204, -74.0118},
	"ATLANTIC CITY": {39.3643, -74.4229},
	"BARNEGAT":      {39.7526, -74.2226},
	"BEDMINSTER":    {40.6787, -74.6379},
	"BERLIN":        {39.7912, -74.9290},
	"BERNARDSVILLE": {40.7173, -74.5665},
	"BLAIRSTOWN":    {40.9857, -74.9579},
	"BLOOMFIELD":    {40.8068, -74.1854},
	"BOONTON":       {40.9026, -74.4071},
	"BRICK":         {40.0576, -74.1157},
	"BRIDGEWATER":   {40.5965, -74.6093},
	"CAMDEN":        {39.9259, -75.1196},
	"CHATHAM":       {40.7401, -74.3854},
	"COLLINGSWOOD":  {39.9181, -75.0718},
	"COLUMBUS":      {40.0448, -74.6932},
	"DENVILLE":      {40.8912, -74.4882},
	"ELIZABETH":     {40.6640, -74.2107},
	"ENGLISHTOWN":   {40.2979, -74.3507},
	"FREEHOLD":      {40.2618, -74.2743},
	"GALLOWAY":      {39.4665, -74.4704},
	"HADDONFIELD":   {39.8912, -75.0376},
	"HOBOKEN":       {40.7439, -74.0324},
	"HOPEWELL":      {40.3884, -74.7621},
	"JERSEY CITY":   {40.7282, -74.0776},
	"LACEY":         {39.8540, -74.2124},
	"LONG BRANCH":   {40.3043, -73.9924},
	"MAPLEWOOD":     {40.7312, -74.2732},
	"MARLBORO":      {40.3151, -74.2465},
	"METUCHEN":      {40.5426, -74.3635},
	"MONTCLAIR":     {40.8176, -74.2093},
	"MORRISTOWN":    {40.7968, -74.4815},
	"NEWARK":        {40.7357, -74.1724},
	"NEW BRUNSWICK": {40.4862, -74.4518},
	"NUTLEY":        {40.8223, -74.1601},
	"OCEAN CITY":    {39.2776, -74.5746},
	"PENNINGTON":    {40.3276, -74.7893},
	"PRINCETON":     {40.3573, -74.6672},
	"RAHWAY":        {40.6084, -74.2776},
	"RAMSEY":        {41.0576, -74.1410},
	"RIDGEWOOD":     {40.9787, -74.1165},
	"RIVER EDGE":    {40.9287, -74.0393},
	"RIVERVIEW":     {40.2454, -74.5643},
	"RUTHERFORD":    {40.8265, -74.1071},
	"SCOTCH PLAINS": {40.6301, -74.3893},
	"SPARTA":        {41.0323, -74.6293},
	"SPRINGFIELD":   {40.6990, -74.3204},
	"SUMMIT":        {40.7163, -74.3643},
	"TRENTON":       {40.2206, -74.7565},
	"UNION":         {40.6976, -74.2632},
	"VENTNOR CITY":  {39.3398, -74.4743},
	"WASHINGTON":    {40.7579, -74.9818},
	"WEST MILFORD":  {41.1312, -74.3665},
	"WOODBURY":      {39.8384, -75.1568},
}
