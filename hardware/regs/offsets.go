// This file is part of hdmitx.
//
// hdmitx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmitx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmitx.  If not, see <https://www.gnu.org/licenses/>.

package regs

// Identification.
const (
	DesignID   = uint16(0x0000)
	RevisionID = uint16(0x0001)
	ProductID0 = uint16(0x0002)
	ProductID1 = uint16(0x0003)
)

// Interrupt handler. The mute registers follow the same order as the status
// registers.
const (
	IHFCStat0         = uint16(0x0100)
	IHFCStat1         = uint16(0x0101)
	IHFCStat2         = uint16(0x0102)
	IHASStat0         = uint16(0x0103)
	IHPhyStat0        = uint16(0x0104)
	IHI2CMStat0       = uint16(0x0105)
	IHCECStat0        = uint16(0x0106)
	IHVPStat0         = uint16(0x0107)
	IHI2CMPhyStat0    = uint16(0x0108)
	IHAHBDMAAudStat0  = uint16(0x0109)
	IHMuteFCStat0     = uint16(0x0180)
	IHMuteFCStat1     = uint16(0x0181)
	IHMuteFCStat2     = uint16(0x0182)
	IHMuteASStat0     = uint16(0x0183)
	IHMutePhyStat0    = uint16(0x0184)
	IHMuteI2CMStat0   = uint16(0x0185)
	IHMuteCECStat0    = uint16(0x0186)
	IHMuteVPStat0     = uint16(0x0187)
	IHMuteI2CMPhyStat = uint16(0x0188)
	IHMuteAHBDMAAud   = uint16(0x0189)
	IHMute            = uint16(0x01ff)
)

// Video sampler.
const (
	TXInvid0     = uint16(0x0200)
	TXInstuffing = uint16(0x0201)
	TXGYData0    = uint16(0x0202)
	TXGYData1    = uint16(0x0203)
	TXRCRData0   = uint16(0x0204)
	TXRCRData1   = uint16(0x0205)
	TXBCBData0   = uint16(0x0206)
	TXBCBData1   = uint16(0x0207)
)

// Video packetizer.
const (
	VPStatus = uint16(0x0800)
	VPPRCD   = uint16(0x0801)
	VPStuff  = uint16(0x0802)
	VPRemap  = uint16(0x0803)
	VPConf   = uint16(0x0804)
	VPMask   = uint16(0x0807)
)

// Frame composer.
const (
	FCInvidConf     = uint16(0x1000)
	FCInHActv0      = uint16(0x1001)
	FCInHActv1      = uint16(0x1002)
	FCInHBlank0     = uint16(0x1003)
	FCInHBlank1     = uint16(0x1004)
	FCInVActv0      = uint16(0x1005)
	FCInVActv1      = uint16(0x1006)
	FCInVBlank      = uint16(0x1007)
	FCHSyncInDelay0 = uint16(0x1008)
	FCHSyncInDelay1 = uint16(0x1009)
	FCHSyncInWidth0 = uint16(0x100a)
	FCHSyncInWidth1 = uint16(0x100b)
	FCVSyncInDelay  = uint16(0x100c)
	FCVSyncInWidth  = uint16(0x100d)
	FCCtrlDur       = uint16(0x1011)
	FCExCtrlDur     = uint16(0x1012)
	FCExCtrlSpac    = uint16(0x1013)
	FCCh0Pream      = uint16(0x1014)
	FCCh1Pream      = uint16(0x1015)
	FCCh2Pream      = uint16(0x1016)
	FCAVIConf3      = uint16(0x1017)
	FCAVIConf0      = uint16(0x1019)
	FCAVIConf1      = uint16(0x101a)
	FCAVIConf2      = uint16(0x101b)
	FCAVIVID        = uint16(0x101c)
	FCAVIETB0       = uint16(0x101d)
	FCAVIETB1       = uint16(0x101e)
	FCAVISBB0       = uint16(0x101f)
	FCAVISBB1       = uint16(0x1020)
	FCAVIELB0       = uint16(0x1021)
	FCAVIELB1       = uint16(0x1022)
	FCAVISRB0       = uint16(0x1023)
	FCAVISRB1       = uint16(0x1024)
	FCMask0         = uint16(0x10d2)
	FCMask1         = uint16(0x10d6)
	FCMask2         = uint16(0x10da)
	FCPRConf        = uint16(0x10e0)
)

// PHY configuration and the PHY I2C master.
const (
	PhyConf0          = uint16(0x3000)
	PhyTst0           = uint16(0x3001)
	PhyTst1           = uint16(0x3002)
	PhyTst2           = uint16(0x3003)
	PhyStat0          = uint16(0x3004)
	PhyInt0           = uint16(0x3005)
	PhyMask0          = uint16(0x3006)
	PhyPol0           = uint16(0x3007)
	PhyI2CMSlaveAddr  = uint16(0x3020)
	PhyI2CMAddress    = uint16(0x3021)
	PhyI2CMDataO1     = uint16(0x3022)
	PhyI2CMDataO0     = uint16(0x3023)
	PhyI2CMDataI1     = uint16(0x3024)
	PhyI2CMDataI0     = uint16(0x3025)
	PhyI2CMOperation  = uint16(0x3026)
	PhyI2CMIntAddr    = uint16(0x3027)
	PhyI2CMCtlIntAddr = uint16(0x3028)
)

// Audio.
const (
	AudInt      = uint16(0x3102)
	AudN1       = uint16(0x3200)
	AudN2       = uint16(0x3201)
	AudN3       = uint16(0x3202)
	AudCTS1     = uint16(0x3203)
	AudCTS2     = uint16(0x3204)
	AudCTS3     = uint16(0x3205)
	AudSPDIFInt = uint16(0x3302)
	AudHBRMask  = uint16(0x3403)
	GPMask      = uint16(0x3505)
)

// Main controller.
const (
	MCSFRDiv     = uint16(0x4000)
	MCClkDis     = uint16(0x4001)
	MCSWRstz     = uint16(0x4002)
	MCFlowCtrl   = uint16(0x4004)
	MCPhyRstz    = uint16(0x4005)
	MCHEACPhyRst = uint16(0x4007)
)

// Colour space converter. The coefficient registers are MSB/LSB pairs in row
// order starting at CSCCoefA1MSB.
const (
	CSCCfg       = uint16(0x4100)
	CSCScale     = uint16(0x4101)
	CSCCoefA1MSB = uint16(0x4102)
	CSCCoefC4LSB = uint16(0x4119)
)

// HDCP.
const (
	AHDCPCfg0  = uint16(0x5000)
	AHDCPCfg1  = uint16(0x5001)
	AAPIIntMsk = uint16(0x5008)
	AVidPolCfg = uint16(0x5009)
)

// CEC and the DDC I2C master.
const (
	CECMask    = uint16(0x7d02)
	I2CMInt    = uint16(0x7e05)
	I2CMCtlInt = uint16(0x7e06)
)

// CSCCoef returns the offset of the MSB register for the coefficient at
// row and column of the CSC matrix. The LSB register follows it.
func CSCCoef(row int, col int) uint16 {
	return CSCCoefA1MSB + uint16(row*8+col*2)
}
