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

// PHY_CONF0 bits.
const (
	PhyConf0PDZ          = uint8(0x80)
	PhyConf0ENTMDS       = uint8(0x40)
	PhyConf0Gen2PDDQ     = uint8(0x10)
	PhyConf0Gen2TXPwrOn  = uint8(0x08)
	PhyConf0SelDataEnPol = uint8(0x02)
	PhyConf0SelDIPIF     = uint8(0x01)
)

// PHY_CONF0 shifts for use with MaskWrite.
const (
	PhyConf0PDZShift          = 7
	PhyConf0ENTMDSShift       = 6
	PhyConf0Gen2PDDQShift     = 4
	PhyConf0Gen2TXPwrOnShift  = 3
	PhyConf0SelDataEnPolShift = 1
	PhyConf0SelDIPIFShift     = 0
)

// PHY_TST0.
const (
	PhyTst0TstClr      = uint8(0x20)
	PhyTst0TstClrShift = 5
)

// PHY_STAT0 and PHY_POL0/PHY_MASK0 share the bit layout for HPD.
const (
	PhyStat0TXPhyLock = uint8(0x01)
	PhyHPD            = uint8(0x02)
)

// IH_PHY_STAT0.
const IHPhyStat0HPD = uint8(0x01)

// IH_I2CMPHY_STAT0 done and error bits.
const (
	IHI2CMPhyStat0Done  = uint8(0x02)
	IHI2CMPhyStat0Error = uint8(0x01)
	IHI2CMPhyStat0Mask  = IHI2CMPhyStat0Done | IHI2CMPhyStat0Error
)

// IH_MUTE.
const (
	IHMuteWakeupInterrupt = uint8(0x02)
	IHMuteAllInterrupt    = uint8(0x01)
)

// IH_FC_STAT2 and FC_MASK2 overflow bits.
const FCStat2Overflow = uint8(0x03)

// PHY I2C master operation and slave address.
const (
	PhyI2CMOperationRead  = uint8(0x01)
	PhyI2CMOperationWrite = uint8(0x10)
	PhyI2CSlaveAddr       = uint8(0x69)
)

// PHY I2C master interrupt addresses written on probe.
const (
	PhyI2CMIntAddrDoneHigh    = uint8(0x08)
	PhyI2CMCtlIntAddrNACKHigh = uint8(0x80)
	PhyI2CMCtlIntAddrArbHigh  = uint8(0x08)
)

// FC_INVIDCONF.
const (
	FCInvidConfHDCPKeepout       = uint8(0x80)
	FCInvidConfVSyncInPolHigh    = uint8(0x40)
	FCInvidConfHSyncInPolHigh    = uint8(0x20)
	FCInvidConfDEInPolHigh       = uint8(0x10)
	FCInvidConfDVIModeHDMI       = uint8(0x08)
	FCInvidConfRVBlankInOSCHigh  = uint8(0x02)
	FCInvidConfInIProgInterlaced = uint8(0x01)
)

// FC_AVICONF0.
const (
	FCAVIConf0PixFmtRGB        = uint8(0x00)
	FCAVIConf0PixFmtYCbCr422   = uint8(0x01)
	FCAVIConf0PixFmtYCbCr444   = uint8(0x02)
	FCAVIConf0ActiveFmtPresent = uint8(0x40)
	FCAVIConf0ScanInfoNoData   = uint8(0x00)
	FCAVIConf0ScanInfoUnder    = uint8(0x20)
)

// FC_AVICONF1.
const (
	FCAVIConf1ActiveAspect43    = uint8(0x09)
	FCAVIConf1ActiveAspect169   = uint8(0x0a)
	FCAVIConf1CodedAspect43     = uint8(0x10)
	FCAVIConf1CodedAspect169    = uint8(0x20)
	FCAVIConf1ColorimetryNoData = uint8(0x00)
	FCAVIConf1ColorimetrySMPTE  = uint8(0x40)
	FCAVIConf1ColorimetryITUR   = uint8(0x80)
	FCAVIConf1ColorimetryExt    = uint8(0xc0)
)

// FC_AVICONF2.
const (
	FCAVIConf2ExtColorimetryXVYCC601 = uint8(0x00)
	FCAVIConf2ExtColorimetryXVYCC709 = uint8(0x10)
	FCAVIConf2ITContentNoData        = uint8(0x00)
	FCAVIConf2RGBQuantDefault        = uint8(0x00)
	FCAVIConf2ScalingNone            = uint8(0x00)
)

// FC_AVICONF3.
const (
	FCAVIConf3ITContentGraphics = uint8(0x00)
	FCAVIConf3QuantRangeLimited = uint8(0x00)
)

// FC_PRCONF. The incoming factor is stored as the factor plus one.
const (
	FCPRConfIncomingMask  = uint8(0xf0)
	FCPRConfIncomingShift = 4
	FCPRConfOutputMask    = uint8(0x0f)
)

// TX_INVID0 and TX_INSTUFFING.
const (
	TXInvid0InternalDEGenDisable = uint8(0x00)
	TXInvid0VideoMappingMask     = uint8(0x1f)
	TXInstuffingStuffing         = uint8(0x07)
)

// VP_PR_CD.
const (
	VPPRCDColorDepthShift = 4
	VPPRCDColorDepthMask  = uint8(0xf0)
	VPPRCDDesiredPRMask   = uint8(0x0f)
)

// VP_STUFF.
const (
	VPStuffIDefaultPhase      = uint8(0x20)
	VPStuffYCC422StuffingMode = uint8(0x04)
	VPStuffPPStuffingMode     = uint8(0x02)
	VPStuffPRStuffingMode     = uint8(0x01)
)

// VP_CONF.
const (
	VPConfBypassEn               = uint8(0x40)
	VPConfPPEn                   = uint8(0x20)
	VPConfPREn                   = uint8(0x10)
	VPConfYCC422En               = uint8(0x08)
	VPConfBypassSelectPacketizer = uint8(0x04)
	VPConfOutputSelectorMask     = uint8(0x03)
	VPConfOutputSelectorBypass   = uint8(0x03)
	VPConfOutputSelectorYCC422   = uint8(0x01)
	VPConfOutputSelectorPP       = uint8(0x00)
)

// VP_REMAP.
const (
	VPRemapYCC422Size16 = uint8(0x00)
	VPRemapYCC422Size20 = uint8(0x01)
	VPRemapYCC422Size24 = uint8(0x02)
)

// CSC_CFG and CSC_SCALE.
const (
	CSCCfgIntModeChromaFormula1 = uint8(0x10)
	CSCCfgDecModeChromaFormula3 = uint8(0x03)
	CSCScaleColorDepthMask      = uint8(0xf0)
	CSCScaleColorDepth24        = uint8(0x00)
	CSCScaleColorDepth30        = uint8(0x50)
	CSCScaleColorDepth36        = uint8(0x60)
	CSCScaleColorDepth48        = uint8(0x70)
	CSCScaleMask                = uint8(0x03)
)

// HDCP configuration.
const (
	AHDCPCfg0RxDetect          = uint8(0x04)
	AVidPolCfgDataEnPolMask    = uint8(0x10)
	AVidPolCfgDataEnPolHigh    = uint8(0x10)
	AHDCPCfg1EncryptionDisable = uint8(0x02)
)

// AUD_CTS3.
const (
	AudCTS3NShiftMask  = uint8(0xe0)
	AudCTS3CTSManual   = uint8(0x10)
	AudCTS3AudCTS3Mask = uint8(0x0f)
)

// MC_CLKDIS.
const (
	MCClkDisHDCP     = uint8(0x40)
	MCClkDisCEC      = uint8(0x20)
	MCClkDisCSC      = uint8(0x10)
	MCClkDisAudio    = uint8(0x08)
	MCClkDisPrepClk  = uint8(0x04)
	MCClkDisTMDSClk  = uint8(0x02)
	MCClkDisPixelClk = uint8(0x01)
	MCClkDisAll      = uint8(0x7f)
)

// MC_SWRSTZ, MC_FLOWCTRL, MC_PHYRSTZ and MC_HEACPHY_RST.
const (
	MCSWRstzTMDSReq     = uint8(0x02)
	MCFlowCtrlCSCInPath = uint8(0x01)
	MCFlowCtrlCSCBypass = uint8(0x00)
	MCPhyRstzDeassert   = uint8(0x01)
	MCPhyRstzAssert     = uint8(0x00)
	MCHEACPhyRstAssert  = uint8(0x01)
)

// PHY sub-bus register addresses. These are not in the register window and
// are only reachable through the PHY I2C master.
const (
	PhyOpModePLLCfg = uint8(0x06)
	PhyCKCalCtrl    = uint8(0x05)
	PhyCKSymTXCtrl  = uint8(0x09)
	PhyVLevCtrl     = uint8(0x0e)
	PhyPLLCurrCtrl  = uint8(0x10)
	PhyPLLPhByCtrl  = uint8(0x13)
	PhyPLLGMPCtrl   = uint8(0x15)
	PhyPLLCfg17     = uint8(0x17)
	PhyTXTerm       = uint8(0x19)
)
