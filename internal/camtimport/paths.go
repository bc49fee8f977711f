package camtimport

import (
	"gopkg.in/xmlpath.v2"
)

// Compiled XPath expressions for the CAMT.053 elements the importer reads.
// All paths except pathBkToCstmrStmt are relative to the node they are
// evaluated against; xmlpath matches local names, so they work for every
// namespaced sub-version of the format.
var (
	pathBkToCstmrStmt = xmlpath.MustCompile("//BkToCstmrStmt")
	pathStmt          = xmlpath.MustCompile("Stmt")

	// Statement level
	pathStmtID     = xmlpath.MustCompile("Id")
	pathCreDtTm    = xmlpath.MustCompile("CreDtTm")
	pathAcctIBAN   = xmlpath.MustCompile("Acct/Id/IBAN")
	pathAcctOthrID = xmlpath.MustCompile("Acct/Id/Othr/Id")
	pathAcctCcy    = xmlpath.MustCompile("Acct/Ccy")
	pathBal        = xmlpath.MustCompile("Bal")
	pathNtry       = xmlpath.MustCompile("Ntry")

	// Balance level
	pathBalCode = xmlpath.MustCompile("Tp/CdOrPrtry/Cd")
	pathBalDt   = xmlpath.MustCompile("Dt/Dt")
	pathBalDtTm = xmlpath.MustCompile("Dt/DtTm")

	// Shared by balances, entries, charge records and transaction details
	pathAmt       = xmlpath.MustCompile("Amt")
	pathAmtCcy    = xmlpath.MustCompile("Amt/@Ccy")
	pathCdtDbtInd = xmlpath.MustCompile("CdtDbtInd")

	// Entry level
	pathBookgDtDt    = xmlpath.MustCompile("BookgDt/Dt")
	pathBookgDtDtTm  = xmlpath.MustCompile("BookgDt/DtTm")
	pathValDtDt      = xmlpath.MustCompile("ValDt/Dt")
	pathValDtDtTm    = xmlpath.MustCompile("ValDt/DtTm")
	pathAcctSvcrRef  = xmlpath.MustCompile("AcctSvcrRef")
	pathNtryRef      = xmlpath.MustCompile("NtryRef")
	pathChrgsRcrd    = xmlpath.MustCompile("Chrgs/Rcrd")
	pathChrgsTotal   = xmlpath.MustCompile("Chrgs/TtlChrgsAndTaxAmt")
	pathTxDtls       = xmlpath.MustCompile("NtryDtls/TxDtls")
	pathAddtlNtryInf = xmlpath.MustCompile("AddtlNtryInf")

	// Transaction detail level
	pathInstdAmt        = xmlpath.MustCompile("AmtDtls/InstdAmt/Amt")
	pathInstdAmtCcy     = xmlpath.MustCompile("AmtDtls/InstdAmt/Amt/@Ccy")
	pathTxAmt           = xmlpath.MustCompile("AmtDtls/TxAmt/Amt")
	pathXchgRate        = xmlpath.MustCompile("CcyXchg/XchgRate")
	pathXchgSrcCcy      = xmlpath.MustCompile("CcyXchg/SrcCcy")
	pathXchgTrgtCcy     = xmlpath.MustCompile("CcyXchg/TrgtCcy")
	pathTxAmtXchgRate   = xmlpath.MustCompile("AmtDtls/TxAmt/CcyXchg/XchgRate")
	pathTxAmtXchgSrc    = xmlpath.MustCompile("AmtDtls/TxAmt/CcyXchg/SrcCcy")
	pathTxAmtXchgTrgt   = xmlpath.MustCompile("AmtDtls/TxAmt/CcyXchg/TrgtCcy")
	pathDbtrNm          = xmlpath.MustCompile("RltdPties/Dbtr/Nm")
	pathCdtrNm          = xmlpath.MustCompile("RltdPties/Cdtr/Nm")
	pathDbtrAcctIBAN    = xmlpath.MustCompile("RltdPties/DbtrAcct/Id/IBAN")
	pathDbtrAcctOthr    = xmlpath.MustCompile("RltdPties/DbtrAcct/Id/Othr/Id")
	pathCdtrAcctIBAN    = xmlpath.MustCompile("RltdPties/CdtrAcct/Id/IBAN")
	pathCdtrAcctOthr    = xmlpath.MustCompile("RltdPties/CdtrAcct/Id/Othr/Id")
	pathRmtInfUstrd     = xmlpath.MustCompile("RmtInf/Ustrd")
	pathRmtInfStrdRef   = xmlpath.MustCompile("RmtInf/Strd/CdtrRefInf/Ref")
	pathRefsEndToEndID  = xmlpath.MustCompile("Refs/EndToEndId")
	pathRefsInstrID     = xmlpath.MustCompile("Refs/InstrId")
)
