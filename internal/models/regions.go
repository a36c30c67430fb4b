package models

import "math/rand"

// Region is one monitored coastal location. The table is static reference
// data and is never mutated at runtime.
type Region struct {
	Region string  `json:"region"`
	State  string  `json:"state"`
	Lat    float64 `json:"lat"`
	Long   float64 `json:"long"`
}

// RandomRegion picks a uniformly random monitored region.
func RandomRegion(rng *rand.Rand) Region {
	return Regions[rng.Intn(len(Regions))]
}

// Regions covers the monitored stretches of the Indian coastline, west to
// east, plus the island territories.
var Regions = []Region{
	{Region: "porbandar", State: "gujarat", Lat: 21.640575, Long: 69.605965},
	{Region: "dwarka", State: "gujarat", Lat: 22.244197, Long: 68.968456},
	{Region: "jamnagar", State: "gujarat", Lat: 22.470701, Long: 70.057732},
	{Region: "okha", State: "gujarat", Lat: 22.468702, Long: 69.069824},
	{Region: "bhavnagar", State: "gujarat", Lat: 21.76287, Long: 72.15331},
	{Region: "diu", State: "gujarat", Lat: 20.71, Long: 70.98},
	{Region: "veraval", State: "gujarat", Lat: 20.908331, Long: 70.358711},
	{Region: "mumbai", State: "maharashtra", Lat: 19.076, Long: 72.8777},
	{Region: "ratnagiri", State: "maharashtra", Lat: 16.994444, Long: 73.300003},
	{Region: "alibag", State: "maharashtra", Lat: 18.651125, Long: 72.868279},
	{Region: "murud", State: "maharashtra", Lat: 18.327, Long: 72.971},
	{Region: "harihareshwar", State: "maharashtra", Lat: 17.994234, Long: 73.025803},
	{Region: "ganapatipule", State: "maharashtra", Lat: 17.1448, Long: 73.2666},
	{Region: "panaji", State: "goa", Lat: 15.496777, Long: 73.827827},
	{Region: "vasco_da_gama", State: "goa", Lat: 15.386033, Long: 73.84404},
	{Region: "margao", State: "goa", Lat: 15.27, Long: 73.95},
	{Region: "calangute", State: "goa", Lat: 15.533414, Long: 73.764954},
	{Region: "anjuna", State: "goa", Lat: 15.584865, Long: 73.743944},
	{Region: "mangalore", State: "karnataka", Lat: 12.86981, Long: 74.843008},
	{Region: "udupi", State: "karnataka", Lat: 13.340881, Long: 74.742142},
	{Region: "karwar", State: "karnataka", Lat: 14.801439, Long: 74.124069},
	{Region: "malpe", State: "karnataka", Lat: 13.35, Long: 74.7},
	{Region: "gokarna", State: "karnataka", Lat: 14.55, Long: 74.32},
	{Region: "kochi", State: "kerala", Lat: 9.931233, Long: 76.267303},
	{Region: "kozhikode", State: "kerala", Lat: 11.258753, Long: 75.780411},
	{Region: "trivandrum", State: "kerala", Lat: 8.524139, Long: 76.936638},
	{Region: "alappuzha", State: "kerala", Lat: 9.498067, Long: 76.338844},
	{Region: "kollam", State: "kerala", Lat: 8.893212, Long: 76.614143},
	{Region: "kannur", State: "kerala", Lat: 11.874477, Long: 75.370369},
	{Region: "chennai", State: "tamil_nadu", Lat: 13.08784, Long: 80.27847},
	{Region: "pondicherry", State: "tamil_nadu", Lat: 11.93, Long: 79.83},
	{Region: "tuticorin", State: "tamil_nadu", Lat: 8.764166, Long: 78.134834},
	{Region: "rameswaram", State: "tamil_nadu", Lat: 9.29, Long: 79.32},
	{Region: "kanyakumari", State: "tamil_nadu", Lat: 8.08, Long: 77.57},
	{Region: "mahabalipuram", State: "tamil_nadu", Lat: 12.62, Long: 80.19},
	{Region: "vishakhapatnam", State: "andhra_pradesh", Lat: 17.686815, Long: 83.218483},
	{Region: "kakinada", State: "andhra_pradesh", Lat: 16.989065, Long: 82.247467},
	{Region: "machilipatnam", State: "andhra_pradesh", Lat: 16.19, Long: 81.14},
	{Region: "nellore", State: "andhra_pradesh", Lat: 14.44, Long: 79.98},
	{Region: "ongole", State: "andhra_pradesh", Lat: 15.51, Long: 80.04},
	{Region: "puri", State: "odisha", Lat: 19.817743, Long: 85.828629},
	{Region: "bhubaneswar", State: "odisha", Lat: 20.27, Long: 85.84},
	{Region: "cuttack", State: "odisha", Lat: 20.462521, Long: 85.882988},
	{Region: "konark", State: "odisha", Lat: 19.89, Long: 86.09},
	{Region: "gopalpur", State: "odisha", Lat: 19.26, Long: 84.91},
	{Region: "chilika", State: "odisha", Lat: 19.72, Long: 85.32},
	{Region: "kolkata", State: "west_bengal", Lat: 22.57, Long: 88.36},
	{Region: "digha", State: "west_bengal", Lat: 21.626617, Long: 87.507431},
	{Region: "sundarbans", State: "west_bengal", Lat: 21.95, Long: 89.18},
	{Region: "haldia", State: "west_bengal", Lat: 22.06, Long: 88.06},
	{Region: "bakkhali", State: "west_bengal", Lat: 21.56, Long: 88.24},
	{Region: "port_blair", State: "andaman_nicobar", Lat: 11.623377, Long: 92.726486},
	{Region: "havelock", State: "andaman_nicobar", Lat: 11.96, Long: 93.0},
	{Region: "neil_island", State: "andaman_nicobar", Lat: 11.8205, Long: 93.055},
	{Region: "diglipur", State: "andaman_nicobar", Lat: 13.25, Long: 93.02},
	{Region: "kavaratti", State: "lakshadweep", Lat: 10.57, Long: 72.64},
	{Region: "agatti", State: "lakshadweep", Lat: 10.8333, Long: 72.2},
	{Region: "minicoy", State: "lakshadweep", Lat: 8.28, Long: 73.04},
	{Region: "kalpeni", State: "lakshadweep", Lat: 10.05, Long: 73.38},
}
