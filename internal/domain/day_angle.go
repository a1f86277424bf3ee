package domain

// DaysPerYear is the year length used by the day angle. Leap years are not
// distinguished; day 366 simply extrapolates.
const DaysPerYear = 365

// DayAngle returns the angular position of the Earth in its orbit, in radians,
// for a day of year (1 = January 1st):
//
//	Γ = 2π(DOY − 1) / 365
//
// Values outside [1, 365] are not rejected and extrapolate linearly.
//
// Reference: Duffie & Beckman, Solar Engineering of Thermal Processes (4th ed.).
func DayAngle(doy float64) float64 {
	return 2 * pi * (doy - 1) / DaysPerYear
}
