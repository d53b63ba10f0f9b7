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

import (
	"fmt"
	"strings"
)

// Names maps register offsets to their canonical names. The CSC coefficient
// registers are added by init().
var Names = map[uint16]string{
	DesignID:          "DESIGN_ID",
	RevisionID:        "REVISION_ID",
	ProductID0:        "PRODUCT_ID0",
	ProductID1:        "PRODUCT_ID1",
	IHFCStat0:         "IH_FC_STAT0",
	IHFCStat1:         "IH_FC_STAT1",
	IHFCStat2:         "IH_FC_STAT2",
	IHASStat0:         "IH_AS_STAT0",
	IHPhyStat0:        "IH_PHY_STAT0",
	IHI2CMStat0:       "IH_I2CM_STAT0",
	IHCECStat0:        "IH_CEC_STAT0",
	IHVPStat0:         "IH_VP_STAT0",
	IHI2CMPhyStat0:    "IH_I2CMPHY_STAT0",
	IHAHBDMAAudStat0:  "IH_AHBDMAAUD_STAT0",
	IHMuteFCStat0:     "IH_MUTE_FC_STAT0",
	IHMuteFCStat1:     "IH_MUTE_FC_STAT1",
	IHMuteFCStat2:     "IH_MUTE_FC_STAT2",
	IHMuteASStat0:     "IH_MUTE_AS_STAT0",
	IHMutePhyStat0:    "IH_MUTE_PHY_STAT0",
	IHMuteI2CMStat0:   "IH_MUTE_I2CM_STAT0",
	IHMuteCECStat0:    "IH_MUTE_CEC_STAT0",
	IHMuteVPStat0:     "IH_MUTE_VP_STAT0",
	IHMuteI2CMPhyStat: "IH_MUTE_I2CMPHY_STAT0",
	IHMuteAHBDMAAud:   "IH_MUTE_AHBDMAAUD_STAT0",
	IHMute:            "IH_MUTE",
	TXInvid0:          "TX_INVID0",
	TXInstuffing:      "TX_INSTUFFING",
	TXGYData0:         "TX_GYDATA0",
	TXGYData1:         "TX_GYDATA1",
	TXRCRData0:        "TX_RCRDATA0",
	TXRCRData1:        "TX_RCRDATA1",
	TXBCBData0:        "TX_BCBDATA0",
	TXBCBData1:        "TX_BCBDATA1",
	VPStatus:          "VP_STATUS",
	VPPRCD:            "VP_PR_CD",
	VPStuff:           "VP_STUFF",
	VPRemap:           "VP_REMAP",
	VPConf:            "VP_CONF",
	VPMask:            "VP_MASK",
	FCInvidConf:       "FC_INVIDCONF",
	FCInHActv0:        "FC_INHACTV0",
	FCInHActv1:        "FC_INHACTV1",
	FCInHBlank0:       "FC_INHBLANK0",
	FCInHBlank1:       "FC_INHBLANK1",
	FCInVActv0:        "FC_INVACTV0",
	FCInVActv1:        "FC_INVACTV1",
	FCInVBlank:        "FC_INVBLANK",
	FCHSyncInDelay0:   "FC_HSYNCINDELAY0",
	FCHSyncInDelay1:   "FC_HSYNCINDELAY1",
	FCHSyncInWidth0:   "FC_HSYNCINWIDTH0",
	FCHSyncInWidth1:   "FC_HSYNCINWIDTH1",
	FCVSyncInDelay:    "FC_VSYNCINDELAY",
	FCVSyncInWidth:    "FC_VSYNCINWIDTH",
	FCCtrlDur:         "FC_CTRLDUR",
	FCExCtrlDur:       "FC_EXCTRLDUR",
	FCExCtrlSpac:      "FC_EXCTRLSPAC",
	FCCh0Pream:        "FC_CH0PREAM",
	FCCh1Pream:        "FC_CH1PREAM",
	FCCh2Pream:        "FC_CH2PREAM",
	FCAVIConf3:        "FC_AVICONF3",
	FCAVIConf0:        "FC_AVICONF0",
	FCAVIConf1:        "FC_AVICONF1",
	FCAVIConf2:        "FC_AVICONF2",
	FCAVIVID:          "FC_AVIVID",
	FCAVIETB0:         "FC_AVIETB0",
	FCAVIETB1:         "FC_AVIETB1",
	FCAVISBB0:         "FC_AVISBB0",
	FCAVISBB1:         "FC_AVISBB1",
	FCAVIELB0:         "FC_AVIELB0",
	FCAVIELB1:         "FC_AVIELB1",
	FCAVISRB0:         "FC_AVISRB0",
	FCAVISRB1:         "FC_AVISRB1",
	FCMask0:           "FC_MASK0",
	FCMask1:           "FC_MASK1",
	FCMask2:           "FC_MASK2",
	FCPRConf:          "FC_PRCONF",
	PhyConf0:          "PHY_CONF0",
	PhyTst0:           "PHY_TST0",
	PhyTst1:           "PHY_TST1",
	PhyTst2:           "PHY_TST2",
	PhyStat0:          "PHY_STAT0",
	PhyInt0:           "PHY_INT0",
	PhyMask0:          "PHY_MASK0",
	PhyPol0:           "PHY_POL0",
	PhyI2CMSlaveAddr:  "PHY_I2CM_SLAVE_ADDR",
	PhyI2CMAddress:    "PHY_I2CM_ADDRESS_ADDR",
	PhyI2CMDataO1:     "PHY_I2CM_DATAO_1_ADDR",
	PhyI2CMDataO0:     "PHY_I2CM_DATAO_0_ADDR",
	PhyI2CMDataI1:     "PHY_I2CM_DATAI_1_ADDR",
	PhyI2CMDataI0:     "PHY_I2CM_DATAI_0_ADDR",
	PhyI2CMOperation:  "PHY_I2CM_OPERATION_ADDR",
	PhyI2CMIntAddr:    "PHY_I2CM_INT_ADDR",
	PhyI2CMCtlIntAddr: "PHY_I2CM_CTLINT_ADDR",
	AudInt:            "AUD_INT",
	AudN1:             "AUD_N1",
	AudN2:             "AUD_N2",
	AudN3:             "AUD_N3",
	AudCTS1:           "AUD_CTS1",
	AudCTS2:           "AUD_CTS2",
	AudCTS3:           "AUD_CTS3",
	AudSPDIFInt:       "AUD_SPDIFINT",
	AudHBRMask:        "AUD_HBR_MASK",
	GPMask:            "GP_MASK",
	MCSFRDiv:          "MC_SFRDIV",
	MCClkDis:          "MC_CLKDIS",
	MCSWRstz:          "MC_SWRSTZ",
	MCFlowCtrl:        "MC_FLOWCTRL",
	MCPhyRstz:         "MC_PHYRSTZ",
	MCHEACPhyRst:      "MC_HEACPHY_RST",
	CSCCfg:            "CSC_CFG",
	CSCScale:          "CSC_SCALE",
	AHDCPCfg0:         "A_HDCPCFG0",
	AHDCPCfg1:         "A_HDCPCFG1",
	AAPIIntMsk:        "A_APIINTMSK",
	AVidPolCfg:        "A_VIDPOLCFG",
	CECMask:           "CEC_MASK",
	I2CMInt:           "I2CM_INT",
	I2CMCtlInt:        "I2CM_CTLINT",
}

func init() {
	for row, r := range []string{"A", "B", "C"} {
		for col := 0; col < 4; col++ {
			Names[CSCCoef(row, col)] = fmt.Sprintf("CSC_COEF_%s%d_MSB", r, col+1)
			Names[CSCCoef(row, col)+1] = fmt.Sprintf("CSC_COEF_%s%d_LSB", r, col+1)
		}
	}
}

// Name returns the canonical name of the register at offset reg. Unnamed
// offsets are returned as a hex string.
func Name(reg uint16) string {
	if n, ok := Names[reg]; ok {
		return n
	}
	return fmt.Sprintf("%#04x", reg)
}

// Lookup returns the offset of the register with the canonical name. The
// comparison is case insensitive.
func Lookup(name string) (uint16, bool) {
	for reg, n := range Names {
		if strings.EqualFold(n, name) {
			return reg, true
		}
	}
	return 0, false
}
